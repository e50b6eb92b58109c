package apiregistryv1

import (
	"context"

	"github.com/fulldump/nitric/service"
)

type contextKey string

const ContextServicerKey contextKey = "b3a1e0f2-servicer"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
