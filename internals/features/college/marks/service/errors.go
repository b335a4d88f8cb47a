// file: internals/features/college/marks/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Taksonomi yang sama dengan fitur attendance: ErrNotAuthorized → 403,
// ErrInvalidInput → 400, ErrPersistence → 500.
var (
	ErrNotAuthorized = errors.New("you are not assigned to this subject")
	ErrInvalidInput  = errors.New("invalid input")
	ErrPersistence   = errors.New("persistence failure")
)

func invalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

func persistencef(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
