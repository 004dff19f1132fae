package services

import "errors"

// Sentinel errors returned by the auth and content services. Controllers
// dispatch on these with errors.Is to pick the user-facing message.
var (
	ErrDuplicateEmail = errors.New("an account with that email already exists")
	ErrUnknownEmail   = errors.New("that email is not registered")
	ErrBadPassword    = errors.New("password incorrect")
	ErrDuplicateTitle = errors.New("a post with that title already exists")
	ErrPostNotFound   = errors.New("post not found")
)
