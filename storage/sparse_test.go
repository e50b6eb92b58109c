package storage

import (
	"math"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/handle"
)

var _ Storage[allocator.FlatID, int] = (*Sparse[allocator.FlatID, int])(nil)

func assertSparseConsistent[I handle.ID, C any](s *Sparse[I, C]) {
	biff.AssertEqual(len(s.ids), len(s.data))
	biff.AssertEqual(len(s.dataIndices), len(s.data))
	biff.AssertEqual(s.mask.Count(), len(s.data))
	for key, i := range s.dataIndices {
		biff.AssertEqual(s.ids[i], key)
		biff.AssertTrue(s.mask.Contains(key))
	}
}

func TestSparse(t *testing.T) {

	biff.Alternative("Sparse storage", func(a *biff.A) {

		far := handle.Wrap(allocator.FlatID(math.MaxUint32 - 1))
		near := handle.Wrap(allocator.FlatID(3))
		middle := handle.Wrap(allocator.FlatID(1 << 20))

		positions := NewSparse[allocator.FlatID, Position]()

		a.Alternative("High keys stay small", func(a *biff.A) {
			_, replaced := positions.Insert(far, Position{2, -5})
			biff.AssertFalse(replaced)

			p, ok := positions.Get(far)
			biff.AssertTrue(ok)
			biff.AssertEqual(p, Position{2, -5})
			biff.AssertTrue(positions.Contains(far))
			biff.AssertFalse(positions.Contains(near))

			biff.AssertEqual(len(positions.dataIndices), 1)
			biff.AssertEqual(len(positions.data), 1)
			assertSparseConsistent(positions)
		})

		a.Alternative("Insert replaces", func(a *biff.A) {
			positions.Insert(near, Position{1, 1})
			prev, replaced := positions.Insert(near, Position{2, 2})
			biff.AssertTrue(replaced)
			biff.AssertEqual(prev, Position{1, 1})
			biff.AssertEqual(positions.Len(), 1)
		})

		a.Alternative("Get mutable", func(a *biff.A) {
			positions.Insert(middle, Position{0, 0})
			p, ok := positions.GetMut(middle)
			biff.AssertTrue(ok)
			p.Y = 7

			got, _ := positions.Get(middle)
			biff.AssertEqual(got, Position{0, 7})

			_, ok = positions.GetMut(far)
			biff.AssertFalse(ok)
		})

		a.Alternative("Remove moves the last value", func(a *biff.A) {
			positions.Insert(far, Position{1, 1})
			positions.Insert(near, Position{2, 2})
			positions.Insert(middle, Position{3, 3})

			removed, ok := positions.Remove(far)
			biff.AssertTrue(ok)
			biff.AssertEqual(removed, Position{1, 1})
			biff.AssertEqual(positions.Keys(), []handle.Key{3, 1 << 20})
			assertSparseConsistent(positions)

			p, _ := positions.Get(middle)
			biff.AssertEqual(p, Position{3, 3})

			_, ok = positions.Remove(far)
			biff.AssertFalse(ok)
		})

		a.Alternative("Range", func(a *biff.A) {
			positions.Insert(middle, Position{1, 0})
			positions.Insert(near, Position{2, 0})

			keys := []handle.Key{}
			positions.Range(func(key handle.Key, p *Position) bool {
				keys = append(keys, key)
				return true
			})
			biff.AssertEqual(keys, []handle.Key{1 << 20, 3})
		})
	})
}
