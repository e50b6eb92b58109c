package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/fulldump/nitric/allocator"
	"github.com/fulldump/nitric/database"
)

// TestCycle runs create, attach, delete and tick rounds in process, one
// registry per worker group, and reports how many keys got recycled.
func TestCycle(c Config) error {

	db := database.NewDatabase(&database.Config{
		Logger: log.New(io.Discard, "", 0),
	})
	db.Open()

	for i := 0; i < c.Registries; i++ {
		_, err := db.CreateRegistry("reg-" + strconv.Itoa(i))
		if err != nil {
			return err
		}
	}
	registries := db.ListRegistries()

	perWorker := c.N / int64(c.Workers)
	value := []byte(`{"x":1,"y":2}`)

	t0 := time.Now()
	err := Parallel(c.Workers, func(worker int) error {
		r := registries["reg-"+strconv.Itoa(worker%c.Registries)]
		batch := make([]allocator.FlatID, 0, 1024)
		for i := int64(0); i < perWorker; i++ {
			id, err := r.Create()
			if err != nil {
				return err
			}
			if _, _, err := r.Attach(id, "position", value); err != nil {
				return err
			}
			batch = append(batch, id)
			if len(batch) < cap(batch) {
				continue
			}
			for _, id := range batch {
				if err := r.Delete(id); err != nil {
					return err
				}
			}
			batch = batch[:0]
			r.Tick()
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.TickAll()

	took := time.Since(t0)
	total := perWorker * int64(c.Workers)
	fmt.Println("cycled:", total)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f entities/sec\n", float64(total)/took.Seconds())

	for name, r := range registries {
		stats := r.Stats()
		fmt.Printf("%s: alive=%d killed=%d counter=%d\n", name, stats.Entities.Alive, stats.Entities.Killed, stats.Entities.Counter)
	}

	return nil
}
