package handle

// Checked is a handle proven valid under a Merger borrow. Its key is a
// snapshot taken at construction, so Key never queries the allocator.
type Checked[I ID] struct {
	id     I
	key    Key
	borrow *Borrow
}

// Check validates id against v and binds the result to borrow b. If v is
// bound to an allocator instance, b must come from that allocator's Merger.
func Check[I ID](id I, v Validator[I], b *Borrow) (Checked[I], error) {
	if b.released {
		panic(ErrBorrowReleased)
	}
	if o, ok := v.(Owned); ok && !o.Owner().Equal(b.Owner()) {
		panic(ErrMergerMismatch)
	}
	key, err := TryKey(id, v)
	if err != nil {
		return Checked[I]{}, err
	}
	return Checked[I]{
		id:     id,
		key:    key,
		borrow: b,
	}, nil
}

// Key returns the snapshot key. It panics if a merge happened after the
// borrow was taken.
func (c Checked[I]) Key() Key {
	if c.borrow == nil {
		panic(ErrBorrowReleased)
	}
	if c.borrow.stale() {
		panic(ErrStaleHandle)
	}
	return c.key
}

func (c Checked[I]) KeyUnchecked() Key {
	return c.key
}

func (c Checked[I]) Inner() I {
	return c.id
}
