package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormat(t *testing.T) {
	id := New("REQ")

	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "REQ", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])
	assert.LessOrEqual(t, len(parts[2]), 5)
	assert.Equal(t, strings.ToUpper(id), id)
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New("CMP")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
