// Package registry keeps entities and their JSON components.
//
// A Registry owns one allocator. Entities are handles of that allocator and
// components are named storages holding one JSON value per entity. Deleting
// an entity only flags it; Tick detaches the components of flagged entities
// and merges the allocator, which frees their handles for reuse.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/handle"
	"github.com/fulldump/nitric/storage"
	"github.com/fulldump/nitric/utils"
)

var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentExists   = errors.New("component already exists")
	ErrUnknownKind       = errors.New("unknown component kind")
	ErrInvalidValue      = errors.New("invalid component value")
	ErrInvalidName       = errors.New("invalid component name")
)

// Component kinds.
const (
	KindDense   = "dense"
	KindSparse  = "sparse"
	KindOrdered = "ordered"
)

type Component struct {
	Kind    string
	Storage storage.Storage[allocator.FlatID, jsontext.Value]
}

type Registry struct {
	mutex      *sync.Mutex
	alloc      *allocator.Flat
	merger     *handle.Merger
	Components map[string]*Component
}

func New() *Registry {
	alloc, merger := allocator.NewFlat()
	return &Registry{
		mutex:      &sync.Mutex{},
		alloc:      alloc,
		merger:     merger,
		Components: map[string]*Component{},
	}
}

func newStorage(kind string) (storage.Storage[allocator.FlatID, jsontext.Value], error) {
	switch kind {
	case KindDense, "":
		return storage.NewDense[allocator.FlatID, jsontext.Value](), nil
	case KindSparse:
		return storage.NewSparse[allocator.FlatID, jsontext.Value](), nil
	case KindOrdered:
		return storage.NewOrdered[allocator.FlatID, jsontext.Value](), nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownKind, kind)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}

func lockBlock(m *sync.Mutex, f func() error) error {
	m.Lock()
	defer m.Unlock()
	return f()
}

// Define creates an empty component with the given kind. Components are also
// created implicitly, as dense, on first Attach.
func (r *Registry) Define(name, kind string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return lockBlock(r.mutex, func() error {
		if _, exists := r.Components[name]; exists {
			return fmt.Errorf("%w: '%s'", ErrComponentExists, name)
		}
		s, err := newStorage(kind)
		if err != nil {
			return err
		}
		if kind == "" {
			kind = KindDense
		}
		r.Components[name] = &Component{Kind: kind, Storage: s}
		return nil
	})
}

func (r *Registry) Create() (allocator.FlatID, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.alloc.Create()
}

// withEntity runs f with a checked handle for id. The borrow is released
// when f returns.
func (r *Registry) withEntity(id allocator.FlatID, f func(c handle.Checked[allocator.FlatID]) error) error {
	return lockBlock(r.mutex, func() error {
		if !r.alloc.Owns(id) {
			return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
		}
		b := r.merger.Borrow()
		defer b.Release()
		c, err := handle.Check(id, handle.Validator[allocator.FlatID](r.alloc), b)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEntityNotFound, err)
		}
		return f(c)
	})
}

func (r *Registry) component(name string) (*Component, error) {
	component, exists := r.Components[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrComponentNotFound, name)
	}
	return component, nil
}

// Attach stores value as component name of entity id. value must be valid
// JSON; it is stored compacted.
func (r *Registry) Attach(id allocator.FlatID, name string, value []byte) (prev jsontext.Value, replaced bool, err error) {

	if err := validateName(name); err != nil {
		return nil, false, err
	}

	v := jsontext.Value(append([]byte(nil), value...))
	if err := v.Compact(); err != nil {
		return nil, false, fmt.Errorf("%w '%s': %w", ErrInvalidValue, name, err)
	}

	err = r.withEntity(id, func(c handle.Checked[allocator.FlatID]) error {
		component, exists := r.Components[name]
		if !exists {
			component = &Component{
				Kind:    KindDense,
				Storage: storage.NewDense[allocator.FlatID, jsontext.Value](),
			}
			r.Components[name] = component
		}
		prev, replaced = component.Storage.Insert(c, v)
		return nil
	})
	return
}

func (r *Registry) Component(id allocator.FlatID, name string) (value jsontext.Value, err error) {
	err = r.withEntity(id, func(c handle.Checked[allocator.FlatID]) error {
		component, err := r.component(name)
		if err != nil {
			return err
		}
		v, ok := component.Storage.Get(c)
		if !ok {
			return fmt.Errorf("%w: entity %s has no '%s'", ErrComponentNotFound, id, name)
		}
		value = slices.Clone(v)
		return nil
	})
	return
}

// Entity returns every component attached to id.
func (r *Registry) Entity(id allocator.FlatID) (components map[string]jsontext.Value, err error) {
	err = r.withEntity(id, func(c handle.Checked[allocator.FlatID]) error {
		components = map[string]jsontext.Value{}
		for name, component := range r.Components {
			if v, ok := component.Storage.Get(c); ok {
				components[name] = slices.Clone(v)
			}
		}
		return nil
	})
	return
}

func (r *Registry) Detach(id allocator.FlatID, name string) (value jsontext.Value, err error) {
	err = r.withEntity(id, func(c handle.Checked[allocator.FlatID]) error {
		component, err := r.component(name)
		if err != nil {
			return err
		}
		v, ok := component.Storage.Remove(c)
		if !ok {
			return fmt.Errorf("%w: entity %s has no '%s'", ErrComponentNotFound, id, name)
		}
		value = v
		return nil
	})
	return
}

// Delete flags id. The entity and its components stay readable until the
// next Tick.
func (r *Registry) Delete(id allocator.FlatID) error {
	return lockBlock(r.mutex, func() error {
		if !r.alloc.Owns(id) {
			return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
		}
		err := r.alloc.TryDelete(id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEntityNotFound, err)
		}
		return nil
	})
}

func (r *Registry) IsFlagged(id allocator.FlatID) (flagged bool, err error) {
	err = r.withEntity(id, func(c handle.Checked[allocator.FlatID]) error {
		flagged = r.alloc.IsFlagged(c)
		return nil
	})
	return
}

// Tick detaches every component of the flagged entities and merges the
// allocator. It returns the freed handles.
func (r *Registry) Tick() []allocator.FlatID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.merger.Shared(func(b *handle.Borrow) {
		r.alloc.RangeFlagged(func(id allocator.FlatID) bool {
			c, err := handle.Check(id, handle.Validator[allocator.FlatID](r.alloc), b)
			if err != nil {
				return true
			}
			for _, component := range r.Components {
				component.Storage.Remove(c)
			}
			return true
		})
	})

	return r.alloc.MergeDeleted(r.merger)
}

// Entities calls f for every valid entity, flagged ones included, while the
// registry is locked.
func (r *Registry) Entities(f func(id allocator.FlatID) bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.alloc.Range(f)
}

type Stats struct {
	Entities   allocator.Stats `json:"entities"`
	Components map[string]int  `json:"components"`
}

func (r *Registry) Stats() Stats {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stats := Stats{
		Entities:   r.alloc.Stats(),
		Components: map[string]int{},
	}
	for name, component := range r.Components {
		stats.Components[name] = component.Storage.Len()
	}
	return stats
}

// ComponentNames returns the defined components sorted by name.
func (r *Registry) ComponentNames() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return utils.GetKeys(r.Components)
}

// Drop removes component name and all its values.
func (r *Registry) Drop(name string) error {
	return lockBlock(r.mutex, func() error {
		if _, err := r.component(name); err != nil {
			return err
		}
		delete(r.Components, name)
		return nil
	})
}
