package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected business failures. Controllers translate
// these into success=false payloads; anything else is an infrastructure
// error and surfaces as HTTP 500.
var (
	// ErrInvalidCredentials covers unknown username, wrong password and a
	// bad two-factor code alike, so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountInactive is a disabled account with a correct password.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrForbidden is a role check failure on an authenticated caller.
	ErrForbidden = errors.New("permission denied")

	// ErrSuperuserImmutable is returned when updateUser targets an admin
	// record. Admin accounts cannot be listed or modified through the
	// user-management channel.
	ErrSuperuserImmutable = errors.New("admin accounts cannot be modified")

	ErrUserNotFound = errors.New("user not found")
)

// ValidationError is a field-specific input rejection, including uniqueness
// conflicts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsBusinessError reports whether err belongs to the expected-failure
// taxonomy rather than the infrastructure channel.
func IsBusinessError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountInactive) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrSuperuserImmutable) ||
		errors.Is(err, ErrUserNotFound)
}
