package allocator

import (
	"github.com/fulldump/nitric/handle"
)

// Phantom never issues handles. It stands in where an allocator type is
// required but the handles involved are valid by construction, so every
// handle is reported valid.
type Phantom[I handle.ID] struct{}

var _ Allocator[FlatID] = Phantom[FlatID]{}

func (Phantom[I]) IsValid(id I) bool {
	return true
}

// NumValid panics: a phantom allocator has no population to count.
func (Phantom[I]) NumValid() int {
	panic("phantom allocator has no population")
}

func (Phantom[I]) NumValidHint() (lower, upper int, ok bool) {
	return 0, 0, false
}
