package api

import (
	"io"
	"log"
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/database"
	"github.com/fulldump/nitric/service"
)

func newTestDatabase() *database.Database {
	return database.NewDatabase(&database.Config{
		Logger: log.New(io.Discard, "", 0),
	})
}

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := newTestDatabase()

		biff.AssertNil(db.Open())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)

		s := service.NewService(db)

		b := Build(s, "test")
		b.WithInterceptors(
			RecoverFromPanic,
			PrettyErrorInterceptor,
			InterceptorUnavailable(db),
		)

		api := apitest.NewWithHandler(b)

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		})

	})
}

func TestUnavailable(t *testing.T) {

	db := newTestDatabase()

	b := Build(service.NewService(db), "test")
	b.WithInterceptors(
		PrettyErrorInterceptor,
		InterceptorUnavailable(db),
	)

	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/v1/registries").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
	biff.AssertEqualJson(resp.BodyJson(), map[string]any{
		"error": map[string]any{
			"message":     "temporary unavailable: opening",
			"description": "Database is not operating",
		},
	})
}

func TestRelease(t *testing.T) {

	db := newTestDatabase()
	db.Open()

	b := Build(service.NewService(db), "v1.2.3")
	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/release").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusOK)
	biff.AssertEqual(resp.BodyJson(), "v1.2.3")
}

func TestCompression(t *testing.T) {

	db := newTestDatabase()
	db.Open()

	b := Build(service.NewService(db), "test")
	b.WithInterceptors(Compression)

	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/release").
		WithHeader("Accept-Encoding", "gzip").
		Do()
	biff.AssertEqual(resp.StatusCode, http.StatusOK)
	biff.AssertEqual(resp.Header.Get("Content-Encoding"), "gzip")
	biff.AssertEqual(resp.Header.Get("Vary"), "Accept-Encoding")
}
