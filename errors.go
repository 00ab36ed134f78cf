package elastichash

import "errors"

// Sentinel errors classify the failure kinds a Table operation can return.
// Callers should classify with errors.Is rather than comparing directly.
var (
	// ErrInvalidCapacity is returned by New when the requested capacity is
	// not positive.
	ErrInvalidCapacity = errors.New("elastichash: invalid capacity")

	// ErrInvalidDelta is returned by New when delta is not in (0,1).
	ErrInvalidDelta = errors.New("elastichash: invalid delta")

	// ErrNilKey is returned by Put, Get, and Remove when the key is a
	// recognizably-nil pointer, interface, map, slice, channel, or function.
	ErrNilKey = errors.New("elastichash: nil key")

	// ErrInsertionFailed indicates the insertion scheduler exhausted its
	// probe budget without finding a free slot despite N < T. This signals
	// a broken invariant or adversarial hash collisions, not a normal
	// condition. The table's state afterward is undefined.
	ErrInsertionFailed = errors.New("elastichash: insertion failed, invariant violated")

	// ErrRehashSizeMismatch indicates a resize's rehash pass ended with a
	// different element count than it started with. The table's state
	// afterward is undefined.
	ErrRehashSizeMismatch = errors.New("elastichash: rehash size mismatch, invariant violated")
)
