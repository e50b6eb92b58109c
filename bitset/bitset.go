package bitset

// BitSet is an unbounded set of uint32 positions. It grows on demand and
// never shrinks. Positions above the high-water mark read as unset.
type BitSet interface {
	// Add sets pos and reports whether it was already set.
	Add(pos uint32) bool
	// Remove clears pos and reports whether it was set.
	Remove(pos uint32) bool
	Contains(pos uint32) bool
	Count() int
	// PopFront clears the lowest set position and returns it.
	PopFront() (uint32, bool)
	// Range calls fn for every set position in ascending order until fn
	// returns false.
	Range(fn func(pos uint32) bool)
}
