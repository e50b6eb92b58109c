package handle

import (
	"github.com/fulldump/nitric/instance"
)

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Merger is the capability to finalize deletions of exactly one allocator.
//
// Checked handles are built from a shared Borrow of the Merger. Merging needs
// exclusive access, so it is refused while any Borrow is outstanding, and
// every merge starts a new epoch which turns older Checked handles stale.
type Merger struct {
	noCopy noCopy

	owner   instance.ID
	epoch   uint64
	borrows int
}

func NewMerger(owner instance.ID) *Merger {
	return &Merger{owner: owner}
}

func (m *Merger) Owner() instance.ID {
	return m.owner
}

func (m *Merger) Epoch() uint64 {
	return m.epoch
}

// Borrows is the number of outstanding shared borrows.
func (m *Merger) Borrows() int {
	return m.borrows
}

func (m *Merger) Borrow() *Borrow {
	m.borrows++
	return &Borrow{
		merger: m,
		epoch:  m.epoch,
	}
}

// Shared runs fn with a borrow that is released when fn returns.
func (m *Merger) Shared(fn func(b *Borrow)) {
	b := m.Borrow()
	defer b.Release()
	fn(b)
}

// Exclusive is called by the allocator right before merging. It panics if the
// merger was issued for another allocator or if borrows are outstanding, and
// advances the epoch otherwise.
func (m *Merger) Exclusive(owner instance.ID) {
	if !m.owner.Equal(owner) {
		panic(ErrMergerMismatch)
	}
	if m.borrows > 0 {
		panic(ErrMergerBorrowed)
	}
	m.epoch++
}

// Borrow is a shared, releasable view of a Merger.
type Borrow struct {
	merger   *Merger
	epoch    uint64
	released bool
}

func (b *Borrow) Owner() instance.ID {
	return b.merger.owner
}

func (b *Borrow) Live() bool {
	return !b.released
}

// Release ends the borrow. Calling it more than once has no effect.
func (b *Borrow) Release() {
	if b.released {
		return
	}
	b.released = true
	b.merger.borrows--
}

func (b *Borrow) stale() bool {
	return b.merger.epoch != b.epoch
}
