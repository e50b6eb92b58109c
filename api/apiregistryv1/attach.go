package apiregistryv1

import (
	"context"
	"encoding/json"
)

type attachRequest struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Value     json.RawMessage `json:"value"`
}

type attachResponse struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Replaced  bool            `json:"replaced"`
	Previous  json.RawMessage `json:"previous,omitempty"`
}

func attach(ctx context.Context, input *attachRequest) (*attachResponse, error) {

	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, err
	}

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	prev, replaced, err := r.Attach(id, input.Component, input.Value)
	if err != nil {
		return nil, err
	}

	return &attachResponse{
		ID:        input.ID,
		Component: input.Component,
		Replaced:  replaced,
		Previous:  json.RawMessage(prev),
	}, nil
}
