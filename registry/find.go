package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/gjson"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/handle"
)

var ErrPathNotFound = errors.New("path not found")

type FindOptions struct {
	Filter map[string]any
	Skip   int64
	// Limit < 0 means no limit.
	Limit int64
}

// Find calls f with every entity whose component name matches the filter,
// in storage order. The registry is locked while f runs.
func (r *Registry) Find(name string, options FindOptions, f func(id allocator.FlatID, value jsontext.Value) bool) error {
	return lockBlock(r.mutex, func() error {

		component, err := r.component(name)
		if err != nil {
			return err
		}

		hasFilter := len(options.Filter) > 0

		skip := options.Skip
		limit := options.Limit
		var result error
		component.Storage.Range(func(key handle.Key, value *jsontext.Value) bool {

			if limit == 0 {
				return false
			}

			if hasFilter {
				data := map[string]any{}
				if err := json.Unmarshal(*value, &data); err != nil {
					return true // only objects can match a filter
				}
				match, err := connor.Match(options.Filter, data)
				if err != nil {
					result = fmt.Errorf("match: %w", err)
					return false
				}
				if !match {
					return true
				}
			}

			if skip > 0 {
				skip--
				return true
			}

			limit--
			return f(r.alloc.FromKey(key), slices.Clone(*value))
		})

		return result
	})
}

// Project returns the part of component name selected by path, using gjson
// path syntax.
func (r *Registry) Project(id allocator.FlatID, name, path string) (jsontext.Value, error) {
	value, err := r.Component(id, name)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return value, nil
	}
	result := gjson.GetBytes(value, path)
	if !result.Exists() {
		return nil, fmt.Errorf("%w: '%s' in '%s'", ErrPathNotFound, path, name)
	}
	return jsontext.Value(result.Raw), nil
}
