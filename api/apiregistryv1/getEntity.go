package apiregistryv1

import (
	"context"
	"encoding/json"
)

type getEntityRequest struct {
	ID        string `json:"id"`
	Component string `json:"component"`
	Path      string `json:"path"`
}

// getEntity returns a single component, optionally projected by path, or all
// the components of the entity when no component is given.
func getEntity(ctx context.Context, input *getEntityRequest) (interface{}, error) {

	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, err
	}

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	if input.Component == "" {
		components, err := r.Entity(id)
		if err != nil {
			return nil, err
		}
		result := make(map[string]json.RawMessage, len(components))
		for name, value := range components {
			result[name] = json.RawMessage(value)
		}
		return result, nil
	}

	value, err := r.Project(id, input.Component, input.Path)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(value), nil
}
