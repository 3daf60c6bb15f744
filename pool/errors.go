package pool

import "errors"

var (
	// ErrInvalidKey indicates a key below the pool's start or at the
	// Infinity sentinel, which the pool can never have issued.
	ErrInvalidKey = errors.New("pool: key outside the pool's range")

	// ErrNotInUse indicates an attempt to release a key that is already free.
	ErrNotInUse = errors.New("pool: key is not in use")

	// ErrClosed indicates an Allocate call against a closed pool.
	ErrClosed = errors.New("pool: pool is closed")
)
