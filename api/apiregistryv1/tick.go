package apiregistryv1

import (
	"context"
)

type tickResponse struct {
	Freed []string `json:"freed"`
}

func tick(ctx context.Context) (*tickResponse, error) {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	return &tickResponse{
		Freed: formatIDs(r.Tick()),
	}, nil
}
