package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for a bad password and for an
	// unknown email alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken signals the unique-email constraint on registration.
	ErrEmailTaken = errors.New("user with this email already exists")

	ErrUserNotFound = errors.New("user not found")

	// ErrClientNotFound covers both a missing client and a client owned by
	// someone else; the two cases are indistinguishable on purpose.
	ErrClientNotFound = errors.New("client not found")

	// ErrProjectNotFound follows the same merged-404 policy as
	// ErrClientNotFound, with ownership resolved through the parent client.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTooManyLoginAttempts is returned when the login throttle trips.
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts, try again later")
)
