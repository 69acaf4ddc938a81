package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("post has expired")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrAuthRejected = errors.New("authentication rejected")
	ErrStorage      = errors.New("storage error")
)

// IsKnown reports whether err already carries one of the sentinels above.
func IsKnown(err error) bool {
	for _, s := range []error{ErrNotFound, ErrExpired, ErrValidation, ErrConflict, ErrAuthRejected, ErrStorage} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
