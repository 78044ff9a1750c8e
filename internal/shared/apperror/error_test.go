package apperror

import (
	"errors"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidBodyDetailsIsObject(t *testing.T) {
	err := InvalidBody(errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeInvalidRequest, err.Code)
	assert.Equal(t, map[string]string{"body": "unexpected EOF"}, err.Details)
}

func TestValidationCollectsFieldErrors(t *testing.T) {
	err := Validation(validation.Errors{"name": errors.New("cannot be blank")})

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, map[string]string{"name": "cannot be blank"}, err.Details)
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := ErrStorageUnavailable.Wrap(errors.New("dial tcp"))

	assert.ErrorIs(t, wrapped, ErrStorageUnavailable)
	assert.NotErrorIs(t, wrapped, ErrInternal)

	got, ok := From(errors.Join(errors.New("outer"), wrapped))
	require.True(t, ok)
	assert.Equal(t, CodeStorageUnavailable, got.Code)
}
