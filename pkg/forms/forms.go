package forms

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern matches the address grammar accepted by the backend.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldSchema declares the validation rules for a single named field
type FieldSchema struct {
	Label    string
	Required bool
	MinLen   int
	MaxLen   int
	Email    bool
	// EqualTo names another field whose value must match exactly.
	// The error is attached to the field carrying this rule.
	EqualTo      string
	EqualToError string
}

// Schema maps field names to their validation rules
type Schema map[string]FieldSchema

// Errors is a field-level error map
type Errors map[string]string

// Validate checks all fields against the schema and returns the error map
// and an overall verdict
func (s Schema) Validate(values map[string]string) (Errors, bool) {
	errs := Errors{}
	for name, field := range s {
		if msg := field.validate(name, values); msg != "" {
			errs[name] = msg
		}
	}
	return errs, len(errs) == 0
}

func (f FieldSchema) validate(name string, values map[string]string) string {
	value := values[name]
	label := f.Label
	if label == "" {
		label = name
	}

	if f.Required && strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", label)
	}
	if value == "" {
		return ""
	}
	if f.MinLen > 0 && len(value) < f.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", label, f.MinLen)
	}
	if f.MaxLen > 0 && len(value) > f.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", label, f.MaxLen)
	}
	if f.Email && !emailPattern.MatchString(value) {
		return fmt.Sprintf("%s is not a valid email address", label)
	}
	if f.EqualTo != "" && value != values[f.EqualTo] {
		if f.EqualToError != "" {
			return f.EqualToError
		}
		return fmt.Sprintf("%s does not match %s", label, f.EqualTo)
	}
	return ""
}

// Form tracks field values with touched semantics: a field's error only
// surfaces after its first blur, then revalidates on every change. Submit
// validates everything regardless of touch state.
type Form struct {
	schema    Schema
	values    map[string]string
	touched   map[string]bool
	errors    Errors
	submitted bool
}

// NewForm creates a form over the given schema
func NewForm(schema Schema) *Form {
	return &Form{
		schema:  schema,
		values:  map[string]string{},
		touched: map[string]bool{},
		errors:  Errors{},
	}
}

// Set updates a field value and revalidates every touched field
func (f *Form) Set(name, value string) {
	f.values[name] = value
	f.revalidate()
}

// Blur marks a field as touched and revalidates
func (f *Form) Blur(name string) {
	f.touched[name] = true
	f.revalidate()
}

// Submit validates all fields and returns the overall verdict. After a
// submit attempt every field reports its error regardless of touch state.
func (f *Form) Submit() bool {
	f.submitted = true
	f.revalidate()
	return len(f.errors) == 0
}

// Value returns the current value of a field
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of all field values
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// FieldError returns the visible error for a field, empty when the field
// is clean or not yet surfaced
func (f *Form) FieldError(name string) string {
	return f.errors[name]
}

// Errors returns the visible field-level error map
func (f *Form) Errors() Errors {
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Valid reports whether the whole form currently passes its schema,
// independent of touch state
func (f *Form) Valid() bool {
	_, ok := f.schema.Validate(f.values)
	return ok
}

func (f *Form) revalidate() {
	all, _ := f.schema.Validate(f.values)
	visible := Errors{}
	for name, msg := range all {
		if f.submitted || f.touched[name] {
			visible[name] = msg
		}
	}
	f.errors = visible
}
