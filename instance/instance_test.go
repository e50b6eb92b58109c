package instance

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestNew(t *testing.T) {

	a := New()
	b := New()

	AssertFalse(a.IsZero())
	AssertTrue(a.Equal(a))
	AssertFalse(a.Equal(b))
	AssertNotEqual(a.Tag(), uint32(0))
	AssertEqual(a.Tag(), a.Tag())
}

func TestAssertEqual_Panics(t *testing.T) {

	a := New()
	b := New()

	a.AssertEqual(a)

	defer func() {
		r := recover()
		AssertNotNil(r)
	}()
	a.AssertEqual(b)
	t.Fatal("expected panic")
}

func TestZero(t *testing.T) {

	var id ID
	AssertTrue(id.IsZero())
	AssertEqual(id.Tag(), uint32(1))
}
