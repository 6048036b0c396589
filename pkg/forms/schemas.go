package forms

// Field names shared by the auth screens.
const (
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldOrganization    = "organization"
	FieldPhone           = "phone"
	FieldAge             = "age"
	FieldGender          = "gender"
)

// LoginSchema returns the validation rules for the login screen
func LoginSchema() Schema {
	return Schema{
		FieldEmail: {
			Label:    "Email",
			Required: true,
			MaxLen:   255,
			Email:    true,
		},
		FieldPassword: {
			Label:    "Password",
			Required: true,
			MinLen:   8,
			MaxLen:   128,
		},
	}
}

// RegistrationSchema returns the validation rules for the registration
// screen. The password mismatch error attaches to the confirmation field
// only.
func RegistrationSchema() Schema {
	return Schema{
		FieldFullName: {
			Label:    "Full name",
			Required: true,
			MaxLen:   255,
		},
		FieldEmail: {
			Label:    "Email",
			Required: true,
			MaxLen:   255,
			Email:    true,
		},
		FieldPassword: {
			Label:    "Password",
			Required: true,
			MinLen:   8,
			MaxLen:   128,
		},
		FieldConfirmPassword: {
			Label:        "Confirm password",
			Required:     true,
			EqualTo:      FieldPassword,
			EqualToError: "Passwords do not match",
		},
		FieldOrganization: {
			Label:    "Organization",
			Required: true,
			MaxLen:   255,
		},
	}
}

// NewPatientSchema returns the validation rules for the patient
// registration dialog
func NewPatientSchema() Schema {
	return Schema{
		FieldFullName: {
			Label:    "Full name",
			Required: true,
			MaxLen:   255,
		},
		FieldPhone: {
			Label:    "Phone",
			Required: true,
			MaxLen:   32,
		},
		FieldAge: {
			Label:    "Age",
			Required: true,
		},
		FieldGender: {
			Label:    "Gender",
			Required: true,
		},
	}
}
