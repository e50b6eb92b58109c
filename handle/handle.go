package handle

import (
	"github.com/fulldump/nitric/instance"
)

// Key is the linear slot number an allocator assigns to a handle. Keys are
// dense and start at zero, so storages can use them as slice indices.
type Key = uint32

// ID is any handle that can expose its key without proving validity.
type ID interface {
	KeyUnchecked() Key
}

type Validator[I ID] interface {
	IsValid(id I) bool
}

// Owned is implemented by validators bound to a single allocator instance.
type Owned interface {
	Owner() instance.ID
}

// Valid is a handle carrying proof that it was alive when the proof was
// built. Storages only accept Valid handles.
type Valid[I ID] interface {
	ID
	Inner() I
	Key() Key
}

// TryKey returns the key of id if v reports it as valid.
func TryKey[I ID](id I, v Validator[I]) (Key, error) {
	if !v.IsValid(id) {
		return 0, &InvalidIDError[I]{ID: id}
	}
	return id.KeyUnchecked(), nil
}

// Wrapper vouches for a handle without consulting any allocator. It is meant
// for handles that are valid by construction, such as the ones used with a
// Phantom allocator.
type Wrapper[I ID] struct {
	id I
}

func Wrap[I ID](id I) Wrapper[I] {
	return Wrapper[I]{id: id}
}

func (w Wrapper[I]) KeyUnchecked() Key {
	return w.id.KeyUnchecked()
}

func (w Wrapper[I]) Key() Key {
	return w.id.KeyUnchecked()
}

func (w Wrapper[I]) Inner() I {
	return w.id
}
