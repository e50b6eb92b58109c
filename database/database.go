package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fulldump/nitric/registry"
	"github.com/fulldump/nitric/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrRegistryNotFound      = errors.New("registry not found")
	ErrRegistryAlreadyExists = errors.New("registry already exists")
)

type Config struct {
	// TickEvery is the period of the automatic merge. Zero disables it.
	TickEvery time.Duration
	Logger    *log.Logger
}

type Database struct {
	config          *Config
	logger          *log.Logger
	status          atomic.Value
	Registries      map[string]*registry.Registry
	registriesMutex *sync.RWMutex
	exit            chan struct{}
	stopOnce        *sync.Once
}

func NewDatabase(config *Config) *Database {
	logger := config.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	db := &Database{
		config:          config,
		logger:          logger,
		Registries:      map[string]*registry.Registry{},
		registriesMutex: &sync.RWMutex{},
		exit:            make(chan struct{}),
		stopOnce:        &sync.Once{},
	}
	db.status.Store(StatusOpening)

	return db
}

func (db *Database) GetStatus() string {
	return db.status.Load().(string)
}

func (db *Database) CreateRegistry(name string) (*registry.Registry, error) {
	db.registriesMutex.Lock()
	defer db.registriesMutex.Unlock()

	if _, exists := db.Registries[name]; exists {
		return nil, fmt.Errorf("%w: '%s'", ErrRegistryAlreadyExists, name)
	}

	r := registry.New()
	db.Registries[name] = r

	return r, nil
}

func (db *Database) GetRegistry(name string) (*registry.Registry, error) {
	db.registriesMutex.RLock()
	defer db.registriesMutex.RUnlock()

	r, exists := db.Registries[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrRegistryNotFound, name)
	}
	return r, nil
}

// ListRegistries returns a snapshot of the registries by name.
func (db *Database) ListRegistries() map[string]*registry.Registry {
	db.registriesMutex.RLock()
	defer db.registriesMutex.RUnlock()

	result := make(map[string]*registry.Registry, len(db.Registries))
	for name, r := range db.Registries {
		result[name] = r
	}
	return result
}

func (db *Database) DropRegistry(name string) error {
	db.registriesMutex.Lock()
	defer db.registriesMutex.Unlock()

	if _, exists := db.Registries[name]; !exists {
		return fmt.Errorf("%w: '%s'", ErrRegistryNotFound, name)
	}
	delete(db.Registries, name)
	return nil
}

// Open makes the database available. Everything lives in memory, so there is
// nothing to load.
func (db *Database) Open() error {
	db.logger.Println("Opening database...")
	db.status.Store(StatusOperating)
	return nil
}

// TickAll merges every registry and returns how many entities each one freed.
func (db *Database) TickAll() map[string]int {
	registries := db.ListRegistries()

	result := make(map[string]int, len(registries))
	for _, name := range utils.GetKeys(registries) {
		t0 := time.Now()
		freed := registries[name].Tick()
		result[name] = len(freed)
		if len(freed) > 0 {
			db.logger.Println("tick", name, len(freed), time.Since(t0))
		}
	}
	return result
}

// Start opens the database and blocks until Stop is called, merging all
// registries every TickEvery meanwhile.
func (db *Database) Start() error {

	err := db.Open()
	if err != nil {
		return err
	}

	if db.config.TickEvery <= 0 {
		<-db.exit
		return nil
	}

	ticker := time.NewTicker(db.config.TickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			db.TickAll()
		case <-db.exit:
			return nil
		}
	}
}

func (db *Database) Stop() error {
	db.stopOnce.Do(func() {
		db.status.Store(StatusClosing)
		db.logger.Println("Closing database...")
		close(db.exit)
	})
	return nil
}
