package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin staff"`
	Age   int    `json:"age" binding:"omitempty,gte=18"`
}

func validate(t *testing.T, req sampleRequest) error {
	t.Helper()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(req)
}

func TestSetupValidator_UsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	err := validate(t, sampleRequest{Email: "not-an-email", Role: "admin"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
	assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
}

func TestFormatValidationErrors_Messages(t *testing.T) {
	SetupValidator()

	err := validate(t, sampleRequest{Email: "crew@example.com", Role: "captain", Age: 12})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 2)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be one of: admin staff", messages["role"])
	assert.Equal(t, "Must be greater than or equal to 18", messages["age"])
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-2")

	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
}
