package apiregistryv1

import (
	"github.com/fulldump/nitric/registry"
)

type RegistryResponse struct {
	Name       string   `json:"name"`
	Entities   int      `json:"entities"`
	Flagged    int      `json:"flagged"`
	Components []string `json:"components"`
}

func newRegistryResponse(name string, r *registry.Registry) *RegistryResponse {
	stats := r.Stats()
	return &RegistryResponse{
		Name:       name,
		Entities:   stats.Entities.Alive,
		Flagged:    stats.Entities.Flagged,
		Components: r.ComponentNames(),
	}
}
