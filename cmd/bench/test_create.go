package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// TestCreate creates N entities with one component each through the HTTP API.
func TestCreate(c Config) error {

	if c.Base == "" {
		err := CreateServer(&c)
		if err != nil {
			return err
		}
	}

	registryName, err := CreateRegistry(c.Base)
	if err != nil {
		return err
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
	}

	createURL := c.Base + "/v1/registries/" + registryName + ":create"
	items := c.N

	t0 := time.Now()
	err = Parallel(c.Workers, func(worker int) error {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				return nil
			}
			body := fmt.Sprintf(`{"components":{"counter":{"n":%d,"worker":%d}}}`, n, worker)
			resp, err := client.Post(createURL, "application/json", bytes.NewReader([]byte(body)))
			if err != nil {
				return err
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				return fmt.Errorf("create entity: unexpected status %s", resp.Status)
			}
		}
	})
	if err != nil {
		return err
	}

	took := time.Since(t0)
	fmt.Println("created:", c.N)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f entities/sec\n", float64(c.N)/took.Seconds())

	return nil
}
