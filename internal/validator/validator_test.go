package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	FirstName string `json:"firstname" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Password  string `json:"password" validate:"required,min=8"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&registerInput{FirstName: "   ", Email: "nope", Password: "short"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must not be blank", vErr.Errors["firstname"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 8 characters long", vErr.Errors["password"])
	assert.NotContains(t, vErr.Errors, "phone")
}

func TestValidate_Phone(t *testing.T) {
	v := New()
	base := registerInput{FirstName: "Ann", Email: "ann@example.com", Password: "12345678"}

	ok := base
	ok.Phone = "+1 (555) 010-2000"
	assert.NoError(t, v.Validate(&ok))

	tooLong := base
	tooLong.Phone = "+1 555 010 2000 123456"
	assert.Error(t, v.Validate(&tooLong))

	extension := base
	extension.Phone = "ext. 12"
	assert.NoError(t, v.Validate(&extension))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone(""))
	assert.True(t, ValidPhone("87001234567"))
	assert.True(t, ValidPhone("555-0100 ext. 12"))
	assert.True(t, ValidPhone(" "+strings.Repeat("1", 20)+" "))
	assert.False(t, ValidPhone("123456789012345678901"))
}

func TestValidationError_MessageIsStable(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}
