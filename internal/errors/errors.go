package errors

import "errors"

var (
	NotFound           = errors.New("not found")
	InvalidCredentials = errors.New("invalid credentials")
	NotLoggedIn        = errors.New("not logged in")
)
