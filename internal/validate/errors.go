package validate

import "fmt"

// PropError describes a single invalid property.
type PropError struct {
	Component string
	Prop      string
	Reason    string
	Err       error // optional sentinel, exposed through Unwrap
}

func (e *PropError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("invalid prop %s supplied to %s: %s", e.Prop, e.Component, e.Reason)
	}
	return fmt.Sprintf("invalid prop %s: %s", e.Prop, e.Reason)
}

func (e *PropError) Unwrap() error {
	return e.Err
}

// ValidationError collects failures across several components. Component
// names the whole being validated, such as a config file.
type ValidationError struct {
	Component string
	Errors    []error
}

func (e *ValidationError) Error() string {
	var msg string
	if len(e.Errors) == 1 {
		msg = e.Errors[0].Error()
	} else {
		msg = fmt.Sprintf("%d validation errors", len(e.Errors))
	}
	if e.Component != "" {
		return e.Component + ": " + msg
	}
	return msg
}

// Add adds an error to the validation error
func (e *ValidationError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if there are validation errors
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
