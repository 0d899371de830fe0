package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("collection not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)

	wrapped := fmt.Errorf("add photo: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal("upload failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upload failed: disk on fire", err.Error())
	assert.Equal(t, "upload failed", err.Message)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
