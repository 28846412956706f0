// Package common defines the sentinel errors shared by the session store,
// the directory controller and both front ends. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Form validation errors. They are reported inline and never mutate state.
	ErrMissingField     = errors.New("required field is empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("terms of use not accepted")
	ErrEmailTaken       = errors.New("email is already in use")

	// Session errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Directory errors.
	ErrFetchFailed      = errors.New("failed to fetch users")
	ErrInvalidDirection = errors.New("invalid page direction")
)

// FieldError reports which form field was left empty.
// It matches ErrMissingField with errors.Is.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MissingField returns a *FieldError for the named field.
func MissingField(field string) error {
	return &FieldError{Field: field}
}
