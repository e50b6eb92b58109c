package apiregistryv1

import (
	"context"

	"github.com/fulldump/nitric/utils"
)

func listRegistries(ctx context.Context) ([]*RegistryResponse, error) {

	registries := GetServicer(ctx).ListRegistries()

	result := []*RegistryResponse{}
	for _, name := range utils.GetKeys(registries) {
		result = append(result, newRegistryResponse(name, registries[name]))
	}

	return result, nil
}
