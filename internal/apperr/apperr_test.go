package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(NotFoundf("missing")))
	assert.Equal(t, InvalidState, KindOf(InvalidStatef("already completed")))
	assert.Equal(t, Forbidden, KindOf(Forbiddenf("not your hostel")))
	assert.Equal(t, Validation, KindOf(Validationf("comments required")))
	assert.Equal(t, Conflict, KindOf(Conflictf("version mismatch")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InvalidStatef("requisition is completed")
	wrapped := fmt.Errorf("warden action failed: %w", inner)

	assert.True(t, IsInvalidState(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Wrap(Conflict, cause, "requisition was modified concurrently")

	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "requisition was modified concurrently")
	assert.Contains(t, err.Error(), "bad connection")
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFoundf("x"), http.StatusNotFound},
		{InvalidStatef("x"), http.StatusConflict},
		{Conflictf("x"), http.StatusConflict},
		{Forbiddenf("x"), http.StatusForbidden},
		{Validationf("x"), http.StatusBadRequest},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
