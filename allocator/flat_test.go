package allocator

import (
	"errors"
	"math"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/bitset"
	"github.com/fulldump/nitric/handle"
)

func mustPanic(t *testing.T, f func()) (r interface{}) {
	t.Helper()
	defer func() {
		r = recover()
	}()
	f()
	t.Fatal("expected panic")
	return nil
}

func TestFlat_New(t *testing.T) {

	a, m := NewFlat()

	biff.AssertEqual(a.NumValid(), 0)
	biff.AssertTrue(m.Owner().Equal(a.Owner()))

	lower, upper, ok := a.NumValidHint()
	biff.AssertEqual(lower, 0)
	biff.AssertEqual(upper, 0)
	biff.AssertTrue(ok)
}

func TestFlat_CheckedInc(t *testing.T) {

	a, _ := NewFlat()

	key, ok := a.checkedInc()
	biff.AssertTrue(ok)
	biff.AssertEqual(key, handle.Key(0))

	a.counter = math.MaxUint32 - 1
	key, ok = a.checkedInc()
	biff.AssertTrue(ok)
	biff.AssertEqual(key, handle.Key(math.MaxUint32-1))

	_, ok = a.checkedInc()
	biff.AssertFalse(ok)
}

func TestFlat_OutOfMemory(t *testing.T) {

	a, m := NewFlatWith(bitset.NewRoaring(), bitset.NewRoaring())
	a.counter = math.MaxUint32

	_, err := a.Create()
	biff.AssertEqual(err, handle.ErrOutOfMemory)

	// a recycled key is still available
	a.counter = math.MaxUint32 - 1
	id, err := a.Create()
	biff.AssertNil(err)
	biff.AssertNil(a.TryDelete(id))
	a.MergeDeleted(m)
	a.counter = math.MaxUint32

	again, err := a.Create()
	biff.AssertNil(err)
	biff.AssertEqual(again, id)
}

func TestFlat_Lifecycle(t *testing.T) {

	biff.Alternative("Flat allocator", func(a *biff.A) {

		alloc, merger := NewFlat()

		id, err := alloc.Create()
		biff.AssertNil(err)
		biff.AssertEqual(id.KeyUnchecked(), handle.Key(0))
		biff.AssertTrue(alloc.IsValid(id))
		biff.AssertEqual(alloc.NumValid(), 1)

		a.Alternative("Delete keeps the handle valid", func(a *biff.A) {
			merger.Shared(func(b *handle.Borrow) {
				valid, err := handle.Check(id, handle.Validator[FlatID](alloc), b)
				biff.AssertNil(err)
				biff.AssertFalse(alloc.IsFlagged(valid))

				alloc.Delete(valid)
				biff.AssertTrue(alloc.IsFlagged(valid))
				biff.AssertTrue(alloc.IsValid(id))
				biff.AssertEqual(valid.Key(), handle.Key(0))
			})
			biff.AssertEqual(alloc.NumValid(), 1)

			a.Alternative("Merge frees it", func(a *biff.A) {
				freed := alloc.MergeDeleted(merger)
				biff.AssertEqual(freed, []FlatID{id})
				biff.AssertFalse(alloc.IsValid(id))
				biff.AssertEqual(alloc.NumValid(), 0)

				err := alloc.TryDelete(id)
				biff.AssertTrue(errors.Is(err, handle.ErrInvalidID))
			})
		})

		a.Alternative("Double delete is freed once", func(a *biff.A) {
			biff.AssertNil(alloc.TryDelete(id))
			biff.AssertNil(alloc.TryDelete(id))
			alloc.AssertDeleted(id)

			freed := alloc.MergeDeleted(merger)
			biff.AssertEqual(freed, []FlatID{id})

			biff.AssertEqual(alloc.MergeDeleted(merger), []FlatID{})
		})

		a.Alternative("Merge without flags frees nothing", func(a *biff.A) {
			biff.AssertEqual(alloc.MergeDeleted(merger), []FlatID{})
			biff.AssertTrue(alloc.IsValid(id))
		})

		a.Alternative("Merge while borrowed panics", func(a *biff.A) {
			b := merger.Borrow()
			r := mustPanic(t, func() {
				alloc.MergeDeleted(merger)
			})
			biff.AssertEqual(r, handle.ErrMergerBorrowed)
			b.Release()
		})

		a.Alternative("Foreign merger panics", func(a *biff.A) {
			_, other := NewFlat()
			r := mustPanic(t, func() {
				alloc.MergeDeleted(other)
			})
			biff.AssertEqual(r, handle.ErrMergerMismatch)
		})

		a.Alternative("Foreign handle panics", func(a *biff.A) {
			other, _ := NewFlat()
			foreign, _ := other.Create()
			biff.AssertFalse(alloc.Owns(foreign))
			r := mustPanic(t, func() {
				alloc.IsValid(foreign)
			})
			biff.AssertEqual(r, ErrForeignID)
		})

		a.Alternative("Create checked", func(a *biff.A) {
			merger.Shared(func(b *handle.Borrow) {
				checked, err := alloc.CreateChecked(b)
				biff.AssertNil(err)
				biff.AssertEqual(checked.Key(), handle.Key(1))
				biff.AssertTrue(alloc.IsValid(checked.Inner()))
			})
		})
	})
}

func TestFlat_HundredHandles(t *testing.T) {

	alloc, merger := NewFlat()

	ids := make([]FlatID, 100)
	for i := range ids {
		id, err := alloc.Create()
		biff.AssertNil(err)
		ids[i] = id
	}
	biff.AssertEqual(ids[3].KeyUnchecked(), handle.Key(3))

	merger.Shared(func(b *handle.Borrow) {
		for _, id := range ids[50:] {
			valid, err := handle.Check(id, handle.Validator[FlatID](alloc), b)
			biff.AssertNil(err)
			alloc.Delete(valid)
		}
	})
	biff.AssertEqual(alloc.NumValid(), 100)

	freed := alloc.MergeDeleted(merger)
	biff.AssertEqual(freed, ids[50:])
	biff.AssertEqual(alloc.NumValid(), 50)

	for _, id := range ids[:50] {
		biff.AssertTrue(alloc.IsValid(id))
	}

	next, err := alloc.Create()
	biff.AssertNil(err)
	biff.AssertTrue(next.KeyUnchecked() >= 50 && next.KeyUnchecked() < 100)

	_, upper, _ := alloc.NumValidHint()
	biff.AssertEqual(upper, 100)

	biff.AssertEqual(alloc.Stats(), Stats{Alive: 51, Flagged: 0, Killed: 49, Counter: 100})
}

func TestFlat_Range(t *testing.T) {

	alloc, _ := NewFlatWith(bitset.NewRoaring(), bitset.NewRoaring())

	ids := []FlatID{}
	for i := 0; i < 5; i++ {
		id, _ := alloc.Create()
		ids = append(ids, id)
	}
	alloc.AssertDeleted(ids[1])
	alloc.AssertDeleted(ids[3])

	alive := []FlatID{}
	alloc.Range(func(id FlatID) bool {
		alive = append(alive, id)
		return true
	})
	biff.AssertEqual(alive, ids)

	flagged := []FlatID{}
	alloc.RangeFlagged(func(id FlatID) bool {
		flagged = append(flagged, id)
		return true
	})
	biff.AssertEqual(flagged, []FlatID{ids[1], ids[3]})
}

func TestParseFlatID(t *testing.T) {

	alloc, _ := NewFlat()
	id, _ := alloc.Create()

	parsed, err := ParseFlatID(id.String())
	biff.AssertNil(err)
	biff.AssertEqual(parsed, id)
	biff.AssertEqual(parsed.Tag(), alloc.Owner().Tag())

	_, err = ParseFlatID("not-a-number")
	biff.AssertNotNil(err)
}
