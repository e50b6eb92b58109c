package apiregistryv1

import (
	"context"

	"github.com/fulldump/nitric/registry"
)

func stats(ctx context.Context) (*registry.Stats, error) {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	s := r.Stats()
	return &s, nil
}
