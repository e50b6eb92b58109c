package handle

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocator has no key left to issue.
var ErrOutOfMemory = errors.New("ran out of memory / resources")

// ErrInvalidID matches every InvalidIDError through errors.Is.
var ErrInvalidID = errors.New("invalid id")

// Programming errors. They are raised with panic, never returned.
var (
	ErrMergerMismatch = errors.New("merger belongs to another allocator")
	ErrMergerBorrowed = errors.New("merger is still borrowed")
	ErrBorrowReleased = errors.New("borrow already released")
	ErrStaleHandle    = errors.New("checked handle outlived its merge epoch")
)

type InvalidIDError[I any] struct {
	ID I
}

func (e *InvalidIDError[I]) Error() string {
	return fmt.Sprintf("ID %v is invalid", e.ID)
}

func (e *InvalidIDError[I]) Is(target error) bool {
	return target == ErrInvalidID
}
