package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/nitric/api/apiregistryv1"
	"github.com/fulldump/nitric/database"
	"github.com/fulldump/nitric/registry"
	"github.com/fulldump/nitric/service"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening || status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

// describeError picks the status code and description for err.
func describeError(err error) (int, string) {

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError

	switch {
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "Database is not operating"
	case errors.Is(err, service.ErrorRegistryNotFound),
		errors.Is(err, registry.ErrEntityNotFound),
		errors.Is(err, registry.ErrComponentNotFound),
		errors.Is(err, registry.ErrPathNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrorRegistryAlreadyExists),
		errors.Is(err, registry.ErrComponentExists):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, service.ErrorInvalidName),
		errors.Is(err, registry.ErrUnknownKind),
		errors.Is(err, registry.ErrInvalidValue),
		errors.Is(err, registry.ErrInvalidName),
		errors.Is(err, apiregistryv1.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.As(err, &syntaxError),
		errors.As(err, &typeError),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Malformed JSON"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, description := describeError(err)

		w := box.GetResponse(ctx)
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(PrettyError{
			Message:     err.Error(),
			Description: description,
		})
	}
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}
