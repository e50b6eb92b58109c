package apiregistryv1

import (
	"context"
	"net/http"

	"github.com/fulldump/nitric/registry"
)

type defineComponentRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type componentResponse struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func defineComponent(ctx context.Context, w http.ResponseWriter, input *defineComponentRequest) (*componentResponse, error) {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	if input.Kind == "" {
		input.Kind = registry.KindDense
	}

	err = r.Define(input.Name, input.Kind)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &componentResponse{
		Name: input.Name,
		Kind: input.Kind,
	}, nil
}
