package forms_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/copilot/pkg/forms"
)

func TestLoginSchema_RejectsShortPassword(t *testing.T) {
	schema := forms.LoginSchema()

	errs, ok := schema.Validate(map[string]string{
		forms.FieldEmail:    "doctor@clinic.org",
		forms.FieldPassword: "short",
	})

	require.False(t, ok)
	assert.Equal(t, "Password must be at least 8 characters", errs[forms.FieldPassword])
	assert.NotContains(t, errs, forms.FieldEmail)
}

func TestLoginSchema_RejectsMalformedEmail(t *testing.T) {
	schema := forms.LoginSchema()

	for _, email := range []string{"doctor", "doctor@", "doctor@clinic", "@clinic.org"} {
		errs, ok := schema.Validate(map[string]string{
			forms.FieldEmail:    email,
			forms.FieldPassword: "password123",
		})
		require.False(t, ok, "email %q should fail", email)
		assert.Equal(t, "Email is not a valid email address", errs[forms.FieldEmail])
	}
}

func TestLoginSchema_AcceptsValidCredentials(t *testing.T) {
	schema := forms.LoginSchema()

	errs, ok := schema.Validate(map[string]string{
		forms.FieldEmail:    "doctor@clinic.org",
		forms.FieldPassword: "password123",
	})

	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestLoginSchema_EnforcesMaxLengths(t *testing.T) {
	schema := forms.LoginSchema()

	errs, ok := schema.Validate(map[string]string{
		forms.FieldEmail:    strings.Repeat("a", 250) + "@clinic.org",
		forms.FieldPassword: strings.Repeat("p", 129),
	})

	require.False(t, ok)
	assert.Equal(t, "Email must be at most 255 characters", errs[forms.FieldEmail])
	assert.Equal(t, "Password must be at most 128 characters", errs[forms.FieldPassword])
}

func TestRegistrationSchema_MismatchAttachesToConfirmationOnly(t *testing.T) {
	schema := forms.RegistrationSchema()

	errs, ok := schema.Validate(map[string]string{
		forms.FieldFullName:        "Dr. Amina Yusuf",
		forms.FieldEmail:           "amina@clinic.org",
		forms.FieldPassword:        "password123",
		forms.FieldConfirmPassword: "password124",
		forms.FieldOrganization:    "CareAxis Clinic",
	})

	require.False(t, ok)
	assert.Equal(t, "Passwords do not match", errs[forms.FieldConfirmPassword])
	assert.NotContains(t, errs, forms.FieldPassword)
}

func TestRegistrationSchema_RequiredFields(t *testing.T) {
	schema := forms.RegistrationSchema()

	errs, ok := schema.Validate(map[string]string{})

	require.False(t, ok)
	assert.Equal(t, "Full name is required", errs[forms.FieldFullName])
	assert.Equal(t, "Email is required", errs[forms.FieldEmail])
	assert.Equal(t, "Password is required", errs[forms.FieldPassword])
	assert.Equal(t, "Confirm password is required", errs[forms.FieldConfirmPassword])
	assert.Equal(t, "Organization is required", errs[forms.FieldOrganization])
}

func TestForm_ErrorSurfacesOnlyAfterBlur(t *testing.T) {
	form := forms.NewForm(forms.LoginSchema())

	form.Set(forms.FieldPassword, "short")
	assert.Empty(t, form.FieldError(forms.FieldPassword), "untouched field stays clean")

	form.Blur(forms.FieldPassword)
	assert.Equal(t, "Password must be at least 8 characters", form.FieldError(forms.FieldPassword))

	form.Set(forms.FieldPassword, "long enough now")
	assert.Empty(t, form.FieldError(forms.FieldPassword), "touched field revalidates on change")
}

func TestForm_SubmitSurfacesUntouchedFields(t *testing.T) {
	form := forms.NewForm(forms.LoginSchema())

	ok := form.Submit()

	require.False(t, ok)
	assert.Equal(t, "Email is required", form.FieldError(forms.FieldEmail))
	assert.Equal(t, "Password is required", form.FieldError(forms.FieldPassword))
}

func TestForm_SubmitPassesWithValidValues(t *testing.T) {
	form := forms.NewForm(forms.LoginSchema())
	form.Set(forms.FieldEmail, "doctor@clinic.org")
	form.Set(forms.FieldPassword, "password123")

	assert.True(t, form.Submit())
	assert.Empty(t, form.Errors())
}
