package service

import "errors"

// Domain errors. Handlers map them to status codes with errors.Is; anything
// else coming out of a service is a storage failure.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
