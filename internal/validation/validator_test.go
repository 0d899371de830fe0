package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/photo-gallery/internal/apperr"
)

type registerBody struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type nameBody struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(registerBody{Name: "Ann", Email: "a@x.com", Password: "p"}))
}

func TestValidate_MissingFieldsUseJSONNames(t *testing.T) {
	v := New()
	err := v.Validate(registerBody{Name: "Ann"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var aerr *apperr.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "is required", aerr.Details["email"])
	assert.Equal(t, "is required", aerr.Details["password"])
	assert.Equal(t, "email, password required", aerr.Message)
}

func TestValidate_BlankCountsAsMissing(t *testing.T) {
	v := New()
	err := v.Validate(registerBody{Name: "   ", Email: "a@x.com", Password: "p"})
	require.Error(t, err)

	var aerr *apperr.Error
	require.True(t, errors.As(err, &aerr))
	assert.Contains(t, aerr.Details, "name")
}

func TestValidate_NonRequiredTag(t *testing.T) {
	v := New()
	err := v.Validate(nameBody{Name: "much too long"})
	require.Error(t, err)

	var aerr *apperr.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "invalid name", aerr.Message)
	assert.Equal(t, "must not exceed 5 characters", aerr.Details["name"])
}
