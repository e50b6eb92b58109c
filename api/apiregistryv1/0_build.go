package apiregistryv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/nitric/service"
)

func BuildV1Registry(v1 *box.R, s service.Servicer) *box.R {

	registries := v1.Resource("/registries").
		WithActions(
			box.Get(listRegistries).WithName("listRegistries"),
			box.Post(createRegistry).WithName("createRegistry"),
		)

	v1.Resource("/registries/{registryName}").
		WithActions(
			box.Get(getRegistry).WithName("getRegistry"),
			box.ActionPost(dropRegistry).WithName("dropRegistry"),
			box.ActionPost(defineComponent).WithName("defineComponent"),
			box.ActionPost(createEntity).WithName("create"),
			box.ActionPost(attach).WithName("attach"),
			box.ActionPost(getEntity).WithName("get"),
			box.ActionPost(detach).WithName("detach"),
			box.ActionPost(deleteEntity).WithName("delete"),
			box.ActionPost(tick).WithName("tick"),
			box.ActionPost(find).WithName("find"),
			box.ActionPost(stats).WithName("stats"),
		)

	return registries
}
