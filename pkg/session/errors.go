package session

import (
	"errors"
	"strings"

	"github.com/goliatone/go-caseform/pkg/form"
)

var (
	// ErrValidation reports a submission blocked by missing required fields.
	ErrValidation = errors.New("session: required fields missing")
	// ErrUnknownField reports an edit addressed to no field.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrFieldDisabled reports an edit to a disabled field.
	ErrFieldDisabled = errors.New("session: field is disabled")
	// ErrFieldKind reports an edit that does not fit the field kind.
	ErrFieldKind = errors.New("session: operation does not fit field kind")
	// ErrUnknownOption reports a value outside a select or radio group.
	ErrUnknownOption = errors.New("session: value is not an option")
	// ErrClosed reports use after Close.
	ErrClosed = errors.New("session: closed")
)

// ValidationError names the required fields that blocked a submission.
type ValidationError struct {
	Violations []form.Violation
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Names(), ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Names returns the offending field names.
func (e *ValidationError) Names() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Name)
	}
	return out
}
