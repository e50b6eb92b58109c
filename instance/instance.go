package instance

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// ID identifies one allocator instance. Handles and mergers carry it so that
// mixing objects issued by different allocators can be detected at runtime.
type ID struct {
	token uuid.UUID
}

func New() ID {
	return ID{token: uuid.New()}
}

func (id ID) String() string {
	return id.token.String()
}

// Tag is a 32 bit fingerprint of the token, small enough to be packed next to
// a key inside a single uint64 handle.
func (id ID) Tag() uint32 {
	hi := binary.BigEndian.Uint32(id.token[0:4])
	lo := binary.BigEndian.Uint32(id.token[12:16])
	tag := hi ^ lo
	if tag == 0 {
		tag = 1
	}
	return tag
}

func (id ID) IsZero() bool {
	return id.token == uuid.Nil
}

func (id ID) Equal(other ID) bool {
	return id.token == other.token
}

// AssertEqual panics when both ids belong to different instances.
func (id ID) AssertEqual(other ID) {
	if !id.Equal(other) {
		panic(fmt.Sprintf("instance mismatch: %s != %s", id, other))
	}
}
