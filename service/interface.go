package service

import (
	"github.com/fulldump/nitric/database"
	"github.com/fulldump/nitric/registry"
)

var (
	ErrorRegistryNotFound      = database.ErrRegistryNotFound
	ErrorRegistryAlreadyExists = database.ErrRegistryAlreadyExists
)

type Servicer interface {
	CreateRegistry(name string) (*registry.Registry, error)
	GetRegistry(name string) (*registry.Registry, error)
	ListRegistries() map[string]*registry.Registry
	DeleteRegistry(name string) error
}
