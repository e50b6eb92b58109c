package storage

import (
	"github.com/google/btree"

	"github.com/fulldump/nitric/handle"
)

type entry[C any] struct {
	key   handle.Key
	value C
}

// Ordered keeps values in a btree. Lookups are O(log n) and Range visits
// keys in ascending order.
type Ordered[I handle.ID, C any] struct {
	tree *btree.BTreeG[*entry[C]]
}

func NewOrdered[I handle.ID, C any]() *Ordered[I, C] {
	return &Ordered[I, C]{
		tree: btree.NewG(32, func(a, b *entry[C]) bool { return a.key < b.key }),
	}
}

func (s *Ordered[I, C]) Len() int {
	return s.tree.Len()
}

func (s *Ordered[I, C]) Get(id handle.Valid[I]) (C, bool) {
	e, ok := s.tree.Get(&entry[C]{key: id.Key()})
	if !ok {
		var zero C
		return zero, false
	}
	return e.value, true
}

func (s *Ordered[I, C]) GetMut(id handle.Valid[I]) (*C, bool) {
	e, ok := s.tree.Get(&entry[C]{key: id.Key()})
	if !ok {
		return nil, false
	}
	return &e.value, true
}

func (s *Ordered[I, C]) Insert(id handle.Valid[I], c C) (C, bool) {
	prev, replaced := s.tree.ReplaceOrInsert(&entry[C]{key: id.Key(), value: c})
	if !replaced {
		var zero C
		return zero, false
	}
	return prev.value, true
}

func (s *Ordered[I, C]) Remove(id handle.Valid[I]) (C, bool) {
	e, ok := s.tree.Delete(&entry[C]{key: id.Key()})
	if !ok {
		var zero C
		return zero, false
	}
	return e.value, true
}

func (s *Ordered[I, C]) Range(fn func(key handle.Key, c *C) bool) {
	s.tree.Ascend(func(e *entry[C]) bool {
		return fn(e.key, &e.value)
	})
}
