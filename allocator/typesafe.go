package allocator

import (
	"github.com/fulldump/nitric/handle"
	"github.com/fulldump/nitric/instance"
)

// TypedID is a FlatID tagged with the type parameter T. Handles of different
// T cannot be mixed up at compile time.
type TypedID[T any] struct {
	inner FlatID
}

func (id TypedID[T]) KeyUnchecked() handle.Key {
	return id.inner.KeyUnchecked()
}

func (id TypedID[T]) Untyped() FlatID {
	return id.inner
}

func (id TypedID[T]) String() string {
	return id.inner.String()
}

// TypeSafe wraps a Flat allocator so it issues TypedID[T] handles.
type TypeSafe[T any] struct {
	flat *Flat
}

var _ MergeDeleter[TypedID[struct{}]] = (*TypeSafe[struct{}])(nil)

func NewTypeSafe[T any]() (*TypeSafe[T], *handle.Merger) {
	flat, merger := NewFlat()
	return &TypeSafe[T]{flat: flat}, merger
}

func (t *TypeSafe[T]) Owner() instance.ID {
	return t.flat.Owner()
}

func (t *TypeSafe[T]) IsValid(id TypedID[T]) bool {
	return t.flat.IsValid(id.inner)
}

func (t *TypeSafe[T]) NumValid() int {
	return t.flat.NumValid()
}

func (t *TypeSafe[T]) NumValidHint() (lower, upper int, ok bool) {
	return t.flat.NumValidHint()
}

func (t *TypeSafe[T]) Create() (TypedID[T], error) {
	id, err := t.flat.Create()
	return TypedID[T]{inner: id}, err
}

func (t *TypeSafe[T]) CreateChecked(b *handle.Borrow) (handle.Checked[TypedID[T]], error) {
	if !b.Owner().Equal(t.flat.owner) {
		panic(handle.ErrMergerMismatch)
	}
	id, err := t.Create()
	if err != nil {
		return handle.Checked[TypedID[T]]{}, err
	}
	return handle.Check[TypedID[T]](id, t, b)
}

func (t *TypeSafe[T]) IsFlagged(id handle.Valid[TypedID[T]]) bool {
	return t.flat.isFlagged(id.Inner().inner, id.Key())
}

func (t *TypeSafe[T]) Delete(id handle.Valid[TypedID[T]]) {
	t.flat.flag(id.Inner().inner, id.Key())
}

func (t *TypeSafe[T]) TryDelete(id TypedID[T]) error {
	if !t.IsValid(id) {
		return &handle.InvalidIDError[TypedID[T]]{ID: id}
	}
	return t.flat.TryDelete(id.inner)
}

func (t *TypeSafe[T]) AssertDeleted(id TypedID[T]) {
	_ = t.TryDelete(id)
}

func (t *TypeSafe[T]) MergeDeleted(m *handle.Merger) []TypedID[T] {
	freed := t.flat.MergeDeleted(m)
	result := make([]TypedID[T], len(freed))
	for i, id := range freed {
		result[i] = TypedID[T]{inner: id}
	}
	return result
}
