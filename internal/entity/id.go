package entity

import "github.com/google/uuid"

type ID string

// NewID generates a fresh unique event identifier. Safe under concurrent use.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }
