package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials deliberately does not reveal whether the email
	// or the password mismatched.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated is returned when an operation needs the session
	// key and the user has none cached (never logged in, logged out, or the
	// process restarted).
	ErrNotAuthenticated = errors.New("no active session for user")

	ErrInvalidEntryMode  = errors.New("invalid entry mode")
	ErrMissingLinkedItem = errors.New("linked entry requires a linked item id")
	ErrInvalidFileKind   = errors.New("invalid file kind")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
