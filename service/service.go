package service

import (
	"errors"
	"strings"

	"github.com/fulldump/nitric/database"
	"github.com/fulldump/nitric/registry"
)

var ErrorInvalidName = errors.New("invalid registry name")

type Service struct {
	db *database.Database
}

var _ Servicer = (*Service)(nil)

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateRegistry(name string) (*registry.Registry, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/:") {
		return nil, ErrorInvalidName
	}
	return s.db.CreateRegistry(name)
}

func (s *Service) GetRegistry(name string) (*registry.Registry, error) {
	return s.db.GetRegistry(name)
}

func (s *Service) ListRegistries() map[string]*registry.Registry {
	return s.db.ListRegistries()
}

func (s *Service) DeleteRegistry(name string) error {
	return s.db.DropRegistry(name)
}
