// file: internals/features/college/attendance/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Taksonomi error inti. Controller memetakan: ErrNotAuthorized → 403,
// ErrInvalidInput → 400 (pesan diteruskan apa adanya ke user),
// ErrPersistence → 500 (detail hanya ke log). "NotFound" tidak jadi error —
// query yang datanya belum ada mengembalikan hasil kosong.
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
