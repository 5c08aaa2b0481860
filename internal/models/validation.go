package models

import "fmt"

// ValidationError marks a request that failed field-level validation,
// before any store access.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func validationErrorf(format string, args ...interface{}) error {
	return ValidationError(fmt.Sprintf(format, args...))
}
