package apiregistryv1

import (
	"context"
	"encoding/json"
)

type detachRequest struct {
	ID        string `json:"id"`
	Component string `json:"component"`
}

func detach(ctx context.Context, input *detachRequest) (json.RawMessage, error) {

	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, err
	}

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	value, err := r.Detach(id, input.Component)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(value), nil
}
