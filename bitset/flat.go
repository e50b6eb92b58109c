package bitset

import (
	"github.com/bits-and-blooms/bitset"
)

// Flat is a single layer word bitset. The zero value is an empty set ready
// to use.
type Flat struct {
	bits bitset.BitSet
}

// NewFlat preallocates room for positions below capacity.
func NewFlat(capacity uint32) *Flat {
	f := &Flat{}
	if capacity > 0 {
		f.bits = *bitset.New(uint(capacity))
	}
	return f
}

func (f *Flat) Add(pos uint32) bool {
	i := uint(pos)
	if f.bits.Test(i) {
		return true
	}
	f.bits.Set(i)
	return false
}

func (f *Flat) Remove(pos uint32) bool {
	i := uint(pos)
	if !f.bits.Test(i) {
		return false
	}
	f.bits.Clear(i)
	return true
}

func (f *Flat) Contains(pos uint32) bool {
	return f.bits.Test(uint(pos))
}

func (f *Flat) Count() int {
	return int(f.bits.Count())
}

func (f *Flat) PopFront() (uint32, bool) {
	i, ok := f.bits.NextSet(0)
	if !ok {
		return 0, false
	}
	f.bits.Clear(i)
	return uint32(i), true
}

func (f *Flat) Range(fn func(pos uint32) bool) {
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		if !fn(uint32(i)) {
			return
		}
	}
}

// Len is the high-water mark: one past the highest position ever stored.
func (f *Flat) Len() int {
	return int(f.bits.Len())
}
