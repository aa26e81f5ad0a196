package dict

import "errors"

var (
	// ErrDuplicateKey is returned by Add when the key is already present.
	ErrDuplicateKey = errors.New("dict: key already exists")
	// ErrNotFound is returned by Delete when the key is absent.
	ErrNotFound = errors.New("dict: key not found")
	// ErrOutOfMemory means a table of the requested size cannot be allocated.
	// Automatic resizes treat it as fatal and panic.
	ErrOutOfMemory = errors.New("dict: out of memory")
	// ErrInvalidIteratorUse is returned by Iterator.Release when an unsafe
	// iterator observed a structural change of its dict.
	ErrInvalidIteratorUse = errors.New("dict: dict modified during unsafe iteration")

	ErrRehashing     = errors.New("dict: rehash in progress")
	ErrSameSize      = errors.New("dict: table already has the requested size")
	ErrInvalidConfig = errors.New("dict: invalid config")
)
