package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test       string `usage:"name of the test: ALL | CREATE | CYCLE"`
	Base       string `usage:"base URL, empty starts a local server"`
	N          int64  `usage:"number of entities"`
	Workers    int    `usage:"number of workers"`
	Registries int    `usage:"number of registries for the CYCLE test"`
}

// Validate rejects configurations the tests cannot run with.
func (c Config) Validate() error {
	if c.N < 0 {
		return fmt.Errorf("n must not be negative, got %d", c.N)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Registries < 1 {
		return fmt.Errorf("registries must be at least 1, got %d", c.Registries)
	}
	return nil
}

var cleanups []func()

func main() {

	defer func() {
		fmt.Println("Cleaning up...")
		for _, cleanup := range cleanups {
			cleanup()
		}
	}()

	c := Config{
		Test:       "cycle",
		Base:       "",
		N:          1_000_000,
		Workers:    16,
		Registries: 4,
	}
	goconfig.Read(&c)

	err := c.Validate()
	if err != nil {
		log.Println("ERROR:", err.Error())
		return
	}

	switch strings.ToUpper(c.Test) {
	case "ALL":
		err = TestCycle(c)
		if err == nil {
			err = TestCreate(c)
		}
	case "CREATE":
		err = TestCreate(c)
	case "CYCLE":
		err = TestCycle(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

	if err != nil {
		log.Println("ERROR:", err.Error())
	}
}
