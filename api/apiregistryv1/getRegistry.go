package apiregistryv1

import (
	"context"

	"github.com/fulldump/box"
)

func getRegistry(ctx context.Context) (*RegistryResponse, error) {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return nil, err
	}

	return newRegistryResponse(box.GetUrlParameter(ctx, "registryName"), r), nil
}
