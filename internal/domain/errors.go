package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmailTaken signals a duplicate user email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidInput signals a request that failed domain validation.
	ErrInvalidInput = errors.New("invalid input")
)
