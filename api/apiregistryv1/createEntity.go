package apiregistryv1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/nitric/utils"
)

type createEntityRequest struct {
	Components map[string]json.RawMessage `json:"components"`
}

type entityResponse struct {
	ID         string   `json:"id"`
	Components []string `json:"components"`
}

func createEntity(ctx context.Context, w http.ResponseWriter, input *createEntityRequest) (*entityResponse, error) {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	id, err := r.Create()
	if err != nil {
		return nil, err
	}

	names := utils.GetKeys(input.Components)
	for _, name := range names {
		_, _, err := r.Attach(id, name, input.Components[name])
		if err != nil {
			if deleteErr := r.Delete(id); deleteErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback entity %s: %w", id, deleteErr))
			}
			return nil, err
		}
	}

	w.WriteHeader(http.StatusCreated)
	return &entityResponse{
		ID:         id.String(),
		Components: names,
	}, nil
}
