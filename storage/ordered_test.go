package storage

import (
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/handle"
)

func TestOrdered(t *testing.T) {

	alloc, merger := allocator.NewFlat()
	b := merger.Borrow()
	defer b.Release()
	ids := createChecked(t, alloc, b, 5)

	s := NewOrdered[allocator.FlatID, string]()

	for _, i := range []int{4, 0, 2} {
		_, replaced := s.Insert(ids[i], "v")
		biff.AssertFalse(replaced)
	}
	prev, replaced := s.Insert(ids[2], "w")
	biff.AssertTrue(replaced)
	biff.AssertEqual(prev, "v")
	biff.AssertEqual(s.Len(), 3)

	v, ok := s.Get(ids[2])
	biff.AssertTrue(ok)
	biff.AssertEqual(v, "w")

	_, ok = s.Get(ids[1])
	biff.AssertFalse(ok)

	p, ok := s.GetMut(ids[4])
	biff.AssertTrue(ok)
	*p = "x"

	keys := []handle.Key{}
	values := []string{}
	s.Range(func(key handle.Key, v *string) bool {
		keys = append(keys, key)
		values = append(values, *v)
		return true
	})
	biff.AssertEqual(keys, []handle.Key{0, 2, 4})
	biff.AssertEqual(values, []string{"v", "w", "x"})

	removed, ok := s.Remove(ids[0])
	biff.AssertTrue(ok)
	biff.AssertEqual(removed, "v")
	_, ok = s.Remove(ids[0])
	biff.AssertFalse(ok)
	biff.AssertEqual(s.Len(), 2)
}
