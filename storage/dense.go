package storage

import (
	"slices"

	"github.com/fulldump/nitric/bitset"
	"github.com/fulldump/nitric/handle"
)

// Dense keeps values packed in a slice. dataIndices maps a key to its
// position in data, ids maps a position back to its key, and mask tells
// which keys are present.
//
// For every key k in mask: ids[dataIndices[k]] == k.
type Dense[I handle.ID, C any] struct {
	data        []C
	dataIndices []uint32
	ids         []handle.Key
	mask        bitset.BitSet
}

func NewDense[I handle.ID, C any]() *Dense[I, C] {
	return NewDenseWithMask[I, C](&bitset.Flat{})
}

// NewDenseWithMask uses mask, which must be empty, to track present keys.
func NewDenseWithMask[I handle.ID, C any](mask bitset.BitSet) *Dense[I, C] {
	return &Dense[I, C]{
		mask: mask,
	}
}

func (s *Dense[I, C]) Len() int {
	return len(s.data)
}

func (s *Dense[I, C]) Contains(id handle.Valid[I]) bool {
	return s.mask.Contains(id.Key())
}

func (s *Dense[I, C]) Get(id handle.Valid[I]) (C, bool) {
	key := id.Key()
	if !s.mask.Contains(key) {
		var zero C
		return zero, false
	}
	return s.data[s.dataIndices[key]], true
}

func (s *Dense[I, C]) GetMut(id handle.Valid[I]) (*C, bool) {
	key := id.Key()
	if !s.mask.Contains(key) {
		return nil, false
	}
	return &s.data[s.dataIndices[key]], true
}

func (s *Dense[I, C]) Insert(id handle.Valid[I], c C) (C, bool) {
	key := id.Key()
	if s.mask.Add(key) {
		i := s.dataIndices[key]
		prev := s.data[i]
		s.data[i] = c
		return prev, true
	}

	if n := int(key) + 1; n > len(s.dataIndices) {
		s.dataIndices = slices.Grow(s.dataIndices, n-len(s.dataIndices))[:n]
	}
	s.dataIndices[key] = uint32(len(s.data))
	s.data = append(s.data, c)
	s.ids = append(s.ids, key)

	var zero C
	return zero, false
}

func (s *Dense[I, C]) Remove(id handle.Valid[I]) (C, bool) {
	key := id.Key()
	if !s.mask.Remove(key) {
		var zero C
		return zero, false
	}
	return s.swapRemove(s.dataIndices[key]), true
}

// swapRemove moves the last value into position i and fixes the index of
// the key that owned it.
func (s *Dense[I, C]) swapRemove(i uint32) C {
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

	return removed
}

// Range visits values in storage order, which is not key order.
func (s *Dense[I, C]) Range(fn func(key handle.Key, c *C) bool) {
	for i := range s.data {
		if !fn(s.ids[i], &s.data[i]) {
			return
		}
	}
}

// Keys returns a copy of the stored keys in storage order.
func (s *Dense[I, C]) Keys() []handle.Key {
	return slices.Clone(s.ids)
}
