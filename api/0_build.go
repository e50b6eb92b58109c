package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/nitric/api/apiregistryv1"
	"github.com/fulldump/nitric/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	apiregistryv1.BuildV1Registry(v1, s).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}).WithName("release"))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apiregistryv1.SetServicer(ctx, s))
		}
	}
}
