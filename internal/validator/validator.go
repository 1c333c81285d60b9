// Package validator provides support for collecting field validation errors.
package validator

type (
	// FieldError describes a single validation failure on a named field.
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	// Validator accumulates field errors in the order they are detected.
	// The error list is the body of a failed-validation HTTP response, so
	// ordering is kept stable and only the first error per field is retained.
	Validator struct {
		Errors []FieldError
	}
)

// New creates a Validator with an empty error list.
func New() *Validator {
	return &Validator{Errors: []FieldError{}}
}

// Valid returns true if the error list is empty.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError appends an error for the given field, unless that field
// already has one recorded.
func (v *Validator) AddError(field, message string) {
	for _, e := range v.Errors {
		if e.Field == field {
			return
		}
	}

	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// Check adds an error for the field only if the check is not ok.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}
