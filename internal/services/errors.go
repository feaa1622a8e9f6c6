package services

import "errors"

// Sentinel errors returned by the service layer. Handlers match them with
// errors.Is to pick a response status; anything else is a 500.
var (
	ErrValidation   = errors.New("invalid input")
	ErrDuplicate    = errors.New("already exists")
	ErrUnauthorized = errors.New("access unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrSelfLike     = errors.New("cannot like own warble")
)
