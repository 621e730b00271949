package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateName     = errors.New("habit name already exists")
	ErrInvalidPayload    = errors.New("invalid card payload")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
)
