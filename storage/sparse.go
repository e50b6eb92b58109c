package storage

import (
	"github.com/fulldump/nitric/bitset"
	"github.com/fulldump/nitric/handle"
)

// Sparse keeps values packed like Dense, but maps keys to positions with a
// map and tracks present keys in a compressed bitset. Memory follows the
// number of stored values, not the highest key.
type Sparse[I handle.ID, C any] struct {
	data        []C
	dataIndices map[handle.Key]uint32
	ids         []handle.Key
	mask        *bitset.Roaring
}

func NewSparse[I handle.ID, C any]() *Sparse[I, C] {
	return &Sparse[I, C]{
		dataIndices: map[handle.Key]uint32{},
		mask:        bitset.NewRoaring(),
	}
}

func (s *Sparse[I, C]) Len() int {
	return len(s.data)
}

func (s *Sparse[I, C]) Contains(id handle.Valid[I]) bool {
	return s.mask.Contains(id.Key())
}

func (s *Sparse[I, C]) Get(id handle.Valid[I]) (C, bool) {
	i, ok := s.dataIndices[id.Key()]
	if !ok {
		var zero C
		return zero, false
	}
	return s.data[i], true
}

func (s *Sparse[I, C]) GetMut(id handle.Valid[I]) (*C, bool) {
	i, ok := s.dataIndices[id.Key()]
	if !ok {
		return nil, false
	}
	return &s.data[i], true
}

func (s *Sparse[I, C]) Insert(id handle.Valid[I], c C) (C, bool) {
	key := id.Key()
	if i, ok := s.dataIndices[key]; ok {
		prev := s.data[i]
		s.data[i] = c
		return prev, true
	}

	s.mask.Add(key)
	s.dataIndices[key] = uint32(len(s.data))
	s.data = append(s.data, c)
	s.ids = append(s.ids, key)

	var zero C
	return zero, false
}

func (s *Sparse[I, C]) Remove(id handle.Valid[I]) (C, bool) {
	key := id.Key()
	i, ok := s.dataIndices[key]
	if !ok {
		var zero C
		return zero, false
	}
	delete(s.dataIndices, key)
	s.mask.Remove(key)

	last := len(s.data) - 1
	removed := s.data[i]
	if int(i) != last {
		s.data[i] = s.data[last]
		s.ids[i] = s.ids[last]
		s.dataIndices[s.ids[i]] = i
	}

	var zero C
	s.data[last] = zero
	s.data = s.data[:last]
	s.ids = s.ids[:last]

	return removed, true
}

// Range visits values in storage order, which is not key order.
func (s *Sparse[I, C]) Range(fn func(key handle.Key, c *C) bool) {
	for i := range s.data {
		if !fn(s.ids[i], &s.data[i]) {
			return
		}
	}
}

// Keys returns the stored keys in ascending order.
func (s *Sparse[I, C]) Keys() []handle.Key {
	keys := make([]handle.Key, 0, len(s.data))
	s.mask.Range(func(key uint32) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
