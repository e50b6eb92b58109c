package apiregistryv1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fulldump/box"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/registry"
)

// ErrBadRequest marks errors caused by malformed input.
var ErrBadRequest = errors.New("bad request")

func parseEntityID(s string) (allocator.FlatID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: entity id is required", ErrBadRequest)
	}
	id, err := allocator.ParseFlatID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: entity id '%s' is not a number", ErrBadRequest, s)
	}
	return id, nil
}

func getRegistryFromURL(ctx context.Context) (*registry.Registry, error) {
	registryName := box.GetUrlParameter(ctx, "registryName")
	return GetServicer(ctx).GetRegistry(registryName)
}

func formatIDs(ids []allocator.FlatID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}
