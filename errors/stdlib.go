package errors

import "errors"

// Re-exports so callers do not need to import both this package and the
// standard library one.

// New wraps errors.New.
func New(text string) error { return errors.New(text) }

// Is wraps errors.Is.
func Is(err, target error) bool { return errors.Is(err, target) }

// As wraps errors.As.
func As(err error, target any) bool { return errors.As(err, target) }
