// Package allocator hands out recyclable handles.
//
// Deletion is split in two phases. Delete only flags a handle, which stays
// valid. MergeDeleted, which needs the allocator's Merger exclusively, frees
// every flagged handle at once and makes its key available for reuse.
package allocator

import (
	"errors"

	"github.com/fulldump/nitric/handle"
)

// ErrForeignID is raised with panic when an allocator receives a handle that
// another allocator issued.
var ErrForeignID = errors.New("id issued by another allocator")

type Allocator[I handle.ID] interface {
	IsValid(id I) bool
	NumValid() int
	// NumValidHint returns bounds on NumValid. ok is false when no upper
	// bound is known.
	NumValidHint() (lower, upper int, ok bool)
}

type Creator[I handle.ID] interface {
	Allocator[I]
	Create() (I, error)
}

type CheckedCreator[I handle.ID] interface {
	Allocator[I]
	CreateChecked(b *handle.Borrow) (handle.Checked[I], error)
}

type Deleter[I handle.ID] interface {
	Allocator[I]
	IsFlagged(id handle.Valid[I]) bool
	// Delete flags id for deletion. Flagging twice is the same as once.
	Delete(id handle.Valid[I])
	TryDelete(id I) error
	// AssertDeleted flags id if it is still valid and ignores it otherwise.
	AssertDeleted(id I)
}

type MergeDeleter[I handle.ID] interface {
	Deleter[I]
	// MergeDeleted frees every flagged handle and returns them.
	MergeDeleted(m *handle.Merger) []I
}
