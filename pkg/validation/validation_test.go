package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "uenvalidator/pkg/domain-errors"
)

type sampleRequest struct {
	BusinessReg string `validate:"max=9"`
	Value       string `validate:"required,notblank"`
}

func TestValidate(t *testing.T) {
	t.Run("passes within limits", func(t *testing.T) {
		assert.NoError(t, Validate(&sampleRequest{BusinessReg: "12345678A", Value: "x"}))
	})

	t.Run("max length", func(t *testing.T) {
		err := Validate(&sampleRequest{BusinessReg: strings.Repeat("1", 10), Value: "x"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "business_reg must be at most 9 characters", err.Error())
	})

	t.Run("required", func(t *testing.T) {
		err := Validate(&sampleRequest{})
		require.Error(t, err)
		assert.Equal(t, "value is required", err.Error())
	})

	t.Run("notblank", func(t *testing.T) {
		err := Validate(&sampleRequest{Value: "   "})
		require.Error(t, err)
		assert.Equal(t, "value must not be blank", err.Error())
	})
}

func TestErrorMessage_NonValidatorError(t *testing.T) {
	assert.Equal(t, "invalid request body", ErrorMessage(errors.New("boom")))
}
