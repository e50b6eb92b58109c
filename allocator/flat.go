package allocator

import (
	"math"
	"strconv"

	"github.com/fulldump/nitric/bitset"
	"github.com/fulldump/nitric/handle"
	"github.com/fulldump/nitric/instance"
)

// FlatID packs the issuing allocator tag in the high 32 bits and the key in
// the low 32 bits.
type FlatID uint64

func (id FlatID) KeyUnchecked() handle.Key {
	return handle.Key(id)
}

func (id FlatID) Tag() uint32 {
	return uint32(id >> 32)
}

func (id FlatID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func ParseFlatID(s string) (FlatID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return FlatID(n), nil
}

// Flat is the default allocator. Keys never issued come from a counter,
// freed keys are kept in a stack and reissued first.
type Flat struct {
	owner   instance.ID
	tag     uint32
	alive   bitset.BitSet
	flagged bitset.BitSet
	counter handle.Key
	killed  []handle.Key
}

var (
	_ MergeDeleter[FlatID]   = (*Flat)(nil)
	_ Creator[FlatID]        = (*Flat)(nil)
	_ CheckedCreator[FlatID] = (*Flat)(nil)
)

func NewFlat() (*Flat, *handle.Merger) {
	return NewFlatWith(&bitset.Flat{}, &bitset.Flat{})
}

// NewFlatWith builds an allocator on top of the given, empty, bitsets.
func NewFlatWith(alive, flagged bitset.BitSet) (*Flat, *handle.Merger) {
	owner := instance.New()
	a := &Flat{
		owner:   owner,
		tag:     owner.Tag(),
		alive:   alive,
		flagged: flagged,
	}
	return a, handle.NewMerger(owner)
}

func (a *Flat) Owner() instance.ID {
	return a.owner
}

// Owns reports whether id was issued by this allocator, alive or not.
func (a *Flat) Owns(id FlatID) bool {
	return id.Tag() == a.tag
}

func (a *Flat) key(id FlatID) handle.Key {
	if !a.Owns(id) {
		panic(ErrForeignID)
	}
	return id.KeyUnchecked()
}

// FromKey builds the handle this allocator uses for key. It does not check
// that key is alive.
func (a *Flat) FromKey(key handle.Key) FlatID {
	return FlatID(uint64(a.tag)<<32 | uint64(key))
}

func (a *Flat) IsValid(id FlatID) bool {
	return a.alive.Contains(a.key(id))
}

func (a *Flat) NumValid() int {
	return a.alive.Count()
}

func (a *Flat) NumValidHint() (lower, upper int, ok bool) {
	return 0, int(a.counter), true
}

func (a *Flat) checkedInc() (handle.Key, bool) {
	if a.counter == math.MaxUint32 {
		return 0, false
	}
	key := a.counter
	a.counter++
	return key, true
}

func (a *Flat) Create() (FlatID, error) {
	var key handle.Key
	if n := len(a.killed); n > 0 {
		key = a.killed[n-1]
		a.killed = a.killed[:n-1]
	} else {
		next, ok := a.checkedInc()
		if !ok {
			return 0, handle.ErrOutOfMemory
		}
		key = next
	}
	a.alive.Add(key)
	return a.FromKey(key), nil
}

func (a *Flat) CreateChecked(b *handle.Borrow) (handle.Checked[FlatID], error) {
	if !b.Owner().Equal(a.owner) {
		panic(handle.ErrMergerMismatch)
	}
	id, err := a.Create()
	if err != nil {
		return handle.Checked[FlatID]{}, err
	}
	return handle.Check[FlatID](id, a, b)
}

func (a *Flat) IsFlagged(id handle.Valid[FlatID]) bool {
	return a.isFlagged(id.Inner(), id.Key())
}

func (a *Flat) isFlagged(id FlatID, key handle.Key) bool {
	a.key(id)
	return a.flagged.Contains(key)
}

func (a *Flat) Delete(id handle.Valid[FlatID]) {
	a.flag(id.Inner(), id.Key())
}

func (a *Flat) flag(id FlatID, key handle.Key) {
	a.key(id)
	if !a.alive.Contains(key) {
		panic(&handle.InvalidIDError[FlatID]{ID: id})
	}
	a.flagged.Add(key)
}

func (a *Flat) TryDelete(id FlatID) error {
	if !a.IsValid(id) {
		return &handle.InvalidIDError[FlatID]{ID: id}
	}
	a.flagged.Add(id.KeyUnchecked())
	return nil
}

func (a *Flat) AssertDeleted(id FlatID) {
	_ = a.TryDelete(id)
}

// MergeDeleted frees the flagged handles in ascending key order. m must be
// the Merger returned together with this allocator and must not be borrowed.
func (a *Flat) MergeDeleted(m *handle.Merger) []FlatID {
	m.Exclusive(a.owner)

	start := len(a.killed)
	for {
		key, ok := a.flagged.PopFront()
		if !ok {
			break
		}
		a.alive.Remove(key)
		a.killed = append(a.killed, key)
	}

	freed := make([]FlatID, 0, len(a.killed)-start)
	for _, key := range a.killed[start:] {
		freed = append(freed, a.FromKey(key))
	}
	return freed
}

// Range calls fn for every valid handle in ascending key order, flagged ones
// included.
func (a *Flat) Range(fn func(id FlatID) bool) {
	a.alive.Range(func(key uint32) bool {
		return fn(a.FromKey(key))
	})
}

// RangeFlagged calls fn for every handle pending a merge.
func (a *Flat) RangeFlagged(fn func(id FlatID) bool) {
	a.flagged.Range(func(key uint32) bool {
		return fn(a.FromKey(key))
	})
}

type Stats struct {
	Alive   int    `json:"alive"`
	Flagged int    `json:"flagged"`
	Killed  int    `json:"killed"`
	Counter uint32 `json:"counter"`
}

func (a *Flat) Stats() Stats {
	return Stats{
		Alive:   a.alive.Count(),
		Flagged: a.flagged.Count(),
		Killed:  len(a.killed),
		Counter: a.counter,
	}
}
