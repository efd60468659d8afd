package services

import (
	"errors"

	"github.com/ad1tya-dev/BiteMe/store"
)

// Sentinel errors for comparison using errors.Is(). Service methods wrap
// these with context; the HTTP layer maps each one to a status code and
// never leaks the wrapped detail to the client.
var (
	// ErrNotFound - a referenced food, cart line or order does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials - login mismatch. Deliberately silent about
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict - registration against an email that is already taken.
	ErrConflict = errors.New("already exists")

	// ErrValidation - a request field is missing or out of range.
	ErrValidation = errors.New("validation failed")

	// ErrStorage - the persistence medium failed; re-exported from the
	// store so handlers map every taxonomy member from one place.
	ErrStorage = store.ErrStorage
)
