package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fulldump/nitric/bootstrap"
	"github.com/fulldump/nitric/configuration"
)

type JSON = map[string]any

// Parallel runs f in workers goroutines and returns the first error.
func Parallel(workers int, f func(worker int) error) error {
	g := &errgroup.Group{}
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return f(i)
		})
	}
	return g.Wait()
}

func CreateRegistry(base string) (string, error) {

	name := "reg-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json.Marshal(JSON{"name": name})

	resp, err := http.Post(base+"/v1/registries", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create registry: unexpected status %s", resp.Status)
	}

	return name, nil
}

func CreateServer(c *Config) error {

	conf := configuration.Default()
	conf.HttpAddr = "127.0.0.1:18080"
	conf.ShowBanner = false
	c.Base = "http://" + conf.HttpAddr

	start, stop, err := bootstrap.Bootstrap(conf)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, func() { stop() })
	go start()

	// wait for the database to be operating
	for i := 0; i < 100; i++ {
		resp, err := http.Get(c.Base + "/v1/registries")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server at %s is not ready", c.Base)
}
