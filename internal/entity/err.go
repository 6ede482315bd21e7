package entity

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalid           = errors.New("invalid entity")
	ErrAlreadyResolved   = errors.New("incident already resolved")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPersistence       = errors.New("persistence failure")
)
