package apiregistryv1

import (
	"context"
	"net/http"
)

type createRegistryRequest struct {
	Name string `json:"name"`
}

func createRegistry(ctx context.Context, w http.ResponseWriter, input *createRegistryRequest) (*RegistryResponse, error) {

	s := GetServicer(ctx)

	r, err := s.CreateRegistry(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return newRegistryResponse(input.Name, r), nil
}
