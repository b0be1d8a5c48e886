package service

import "errors"

// Business errors surfaced by the service layer. Handlers map these to
// HTTP status codes; anything unrecognized becomes a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrNotFriends         = errors.New("you can only message friends")
	ErrDuplicateContact   = errors.New("contact already added")
	ErrSelfReference      = errors.New("operation cannot target yourself")
	ErrValidation         = errors.New("invalid request")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAlreadyBlocked     = errors.New("user already blocked")
	ErrNotBlocked         = errors.New("user not in block list")
	ErrNotDeleted         = errors.New("user is not deleted")
)
