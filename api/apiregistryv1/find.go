package apiregistryv1

import (
	"context"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/registry"
)

type findRequest struct {
	Component string         `json:"component"`
	Filter    map[string]any `json:"filter"`
	Skip      int64          `json:"skip"`
	Limit     *int64         `json:"limit"`
}

type findRow struct {
	ID    string         `json:"id"`
	Value jsontext.Value `json:"value"`
}

// find writes one JSON line per matching entity. Limit defaults to 1, a
// negative limit returns every match.
func find(ctx context.Context, w http.ResponseWriter, input *findRequest) error {

	r, err := getRegistryFromURL(ctx)
	if err != nil {
		return err
	}

	options := registry.FindOptions{
		Filter: input.Filter,
		Skip:   input.Skip,
		Limit:  1,
	}
	if input.Limit != nil {
		options.Limit = *input.Limit
	}

	var writeErr error
	err = r.Find(input.Component, options, func(id allocator.FlatID, value jsontext.Value) bool {
		b, err := json.Marshal(findRow{ID: id.String(), Value: value})
		if err != nil {
			writeErr = err
			return false
		}
		w.Write(append(b, '\n'))
		return true
	})
	if err != nil {
		return err
	}

	return writeErr
}
