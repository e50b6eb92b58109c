package bitset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Roaring is a compressed bitset. It keeps memory low when the set positions
// are few and far apart.
type Roaring struct {
	bm *roaring.Bitmap
}

func NewRoaring() *Roaring {
	return &Roaring{bm: roaring.New()}
}

func (r *Roaring) Add(pos uint32) bool {
	return !r.bm.CheckedAdd(pos)
}

func (r *Roaring) Remove(pos uint32) bool {
	return r.bm.CheckedRemove(pos)
}

func (r *Roaring) Contains(pos uint32) bool {
	return r.bm.Contains(pos)
}

func (r *Roaring) Count() int {
	return int(r.bm.GetCardinality())
}

func (r *Roaring) PopFront() (uint32, bool) {
	if r.bm.IsEmpty() {
		return 0, false
	}
	pos := r.bm.Minimum()
	r.bm.Remove(pos)
	return pos, true
}

func (r *Roaring) Range(fn func(pos uint32) bool) {
	it := r.bm.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// SizeInBytes estimates the serialized footprint of the set.
func (r *Roaring) SizeInBytes() uint64 {
	return r.bm.GetSizeInBytes()
}
