// Package storage maps valid handles to component values.
//
// Every operation takes a handle.Valid, so a value can only be reached with
// a handle that was proven alive under a merger borrow.
package storage

import (
	"github.com/fulldump/nitric/handle"
)

type Getter[I handle.ID, C any] interface {
	Get(id handle.Valid[I]) (C, bool)
}

type MutGetter[I handle.ID, C any] interface {
	GetMut(id handle.Valid[I]) (*C, bool)
}

type Inserter[I handle.ID, C any] interface {
	// Insert stores c for id and returns the replaced value, if any.
	Insert(id handle.Valid[I], c C) (C, bool)
}

type Remover[I handle.ID, C any] interface {
	Remove(id handle.Valid[I]) (C, bool)
}

type Storage[I handle.ID, C any] interface {
	Getter[I, C]
	MutGetter[I, C]
	Inserter[I, C]
	Remover[I, C]
	Len() int
	Range(fn func(key handle.Key, c *C) bool)
}
