package apiregistryv1

import (
	"context"
)

type deleteEntityRequest struct {
	ID string `json:"id"`
}

type deleteEntityResponse struct {
	ID      string `json:"id"`
	Flagged bool   `json:"flagged"`
}

// deleteEntity flags the entity. It is freed by the next tick.
func deleteEntity(ctx context.Context, input *deleteEntityRequest) (*deleteEntityResponse, error) {

	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, err
	}

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	err = r.Delete(id)
	if err != nil {
		return nil, err
	}

	return &deleteEntityResponse{
		ID:      input.ID,
		Flagged: true,
	}, nil
}
