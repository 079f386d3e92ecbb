// Package ids generates the human-readable document numbers used across
// requisitions, complaints, transfer requests and payments.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

// New returns an identifier like REQ-MB2K3X9P-7F2Q1: prefix, millisecond
// timestamp in base36, and a random base36 suffix. Uniqueness is enforced by
// the database unique index; the random suffix makes collisions within one
// millisecond vanishingly unlikely.
func New(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [8]byte
	_, _ = rand.Read(buf[:])
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)
	if len(suffix) > 5 {
		suffix = suffix[:5]
	}

	return strings.ToUpper(prefix + "-" + ts + "-" + suffix)
}
