package allocator

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/handle"
)

type position struct{}
type rotation struct{}

func TestTypeSafe(t *testing.T) {

	positions, merger := NewTypeSafe[position]()
	rotations, _ := NewTypeSafe[rotation]()

	id, err := positions.Create()
	biff.AssertNil(err)
	biff.AssertTrue(positions.IsValid(id))
	biff.AssertEqual(positions.NumValid(), 1)

	other, _ := rotations.Create()
	biff.AssertEqual(other.KeyUnchecked(), id.KeyUnchecked())

	merger.Shared(func(b *handle.Borrow) {
		checked, err := positions.CreateChecked(b)
		biff.AssertNil(err)
		biff.AssertEqual(checked.Key(), handle.Key(1))

		positions.Delete(checked)
		biff.AssertTrue(positions.IsFlagged(checked))
	})

	freed := positions.MergeDeleted(merger)
	biff.AssertEqual(len(freed), 1)
	biff.AssertEqual(freed[0].KeyUnchecked(), handle.Key(1))

	err = positions.TryDelete(freed[0])
	biff.AssertTrue(errors.Is(err, handle.ErrInvalidID))

	positions.AssertDeleted(id)
	biff.AssertEqual(positions.MergeDeleted(merger)[0], id)
	biff.AssertEqual(positions.NumValid(), 0)
}

func TestPhantom(t *testing.T) {

	p := Phantom[FlatID]{}
	biff.AssertTrue(p.IsValid(FlatID(12345)))

	_, _, ok := p.NumValidHint()
	biff.AssertFalse(ok)

	r := mustPanic(t, func() {
		p.NumValid()
	})
	biff.AssertNotNil(r)

	key, err := handle.TryKey[FlatID](FlatID(7), p)
	biff.AssertNil(err)
	biff.AssertEqual(key, handle.Key(7))
}
