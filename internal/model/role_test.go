package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"student", "caretaker", "warden", "dean", "admin"} {
		r, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, r.String())
	}

	_, err := ParseRole("superadmin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestIsStaff(t *testing.T) {
	assert.False(t, RoleStudent.IsStaff())
	assert.True(t, RoleCaretaker.IsStaff())
	assert.True(t, RoleWarden.IsStaff())
	assert.True(t, RoleDean.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}

func TestIsTerminalReqStatus(t *testing.T) {
	terminal := []string{
		ReqStatusCompleted, ReqStatusCancelled,
		ReqStatusRejectedByWarden, ReqStatusRejectedByDean,
	}
	for _, s := range terminal {
		assert.True(t, IsTerminalReqStatus(s), s)
	}

	open := []string{
		ReqStatusPendingWarden, ReqStatusPendingDean,
		ReqStatusApprovedByDean, ReqStatusReturnedToCaretaker, ReqStatusPendingAdmin,
	}
	for _, s := range open {
		assert.False(t, IsTerminalReqStatus(s), s)
	}
}
