package user

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown users and wrong
	// passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
