// Package app holds the application services and business logic.
package app

import "errors"

var (
	// ErrUserExists indicates that registration hit an already-used email.
	ErrUserExists = errors.New("a user with this email already exists")
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a missing, malformed or expired bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// InvalidRequestError carries a user-facing validation message for a
// malformed request body or query.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }

func invalidRequest(message string) error {
	return &InvalidRequestError{Message: message}
}
