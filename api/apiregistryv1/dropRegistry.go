package apiregistryv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func dropRegistry(ctx context.Context, w http.ResponseWriter) error {

	s := GetServicer(ctx)

	registryName := box.GetUrlParameter(ctx, "registryName")

	return s.DeleteRegistry(registryName)
}
