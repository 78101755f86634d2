package model

import "errors"

var (
	// ErrInvalidItemType is returned by Add for anything that is not a *Todo.
	ErrInvalidItemType = errors.New("can only add Todo objects")
	// ErrIndexNotFound is returned by index-based operations for an index outside [0, Size()).
	ErrIndexNotFound = errors.New("item not found")
)
