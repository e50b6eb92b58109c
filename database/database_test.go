package database

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/fulldump/biff"
)

func newTestDatabase(tickEvery time.Duration) (*Database, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	db := NewDatabase(&Config{
		TickEvery: tickEvery,
		Logger:    log.New(buf, "", 0),
	})
	return db, buf
}

func TestDatabase(t *testing.T) {

	biff.Alternative("Database", func(a *biff.A) {

		db, _ := newTestDatabase(0)
		biff.AssertEqual(db.GetStatus(), StatusOpening)
		biff.AssertNil(db.Open())
		biff.AssertEqual(db.GetStatus(), StatusOperating)

		_, err := db.CreateRegistry("world")
		biff.AssertNil(err)

		a.Alternative("Create twice", func(a *biff.A) {
			_, err := db.CreateRegistry("world")
			biff.AssertTrue(errors.Is(err, ErrRegistryAlreadyExists))
		})

		a.Alternative("Get", func(a *biff.A) {
			r, err := db.GetRegistry("world")
			biff.AssertNil(err)
			biff.AssertNotNil(r)

			_, err = db.GetRegistry("invented")
			biff.AssertTrue(errors.Is(err, ErrRegistryNotFound))
		})

		a.Alternative("List", func(a *biff.A) {
			db.CreateRegistry("another")
			list := db.ListRegistries()
			biff.AssertEqual(len(list), 2)
		})

		a.Alternative("Drop", func(a *biff.A) {
			biff.AssertNil(db.DropRegistry("world"))
			err := db.DropRegistry("world")
			biff.AssertTrue(errors.Is(err, ErrRegistryNotFound))
		})

		a.Alternative("Tick all", func(a *biff.A) {
			r, _ := db.GetRegistry("world")
			id, _ := r.Create()
			r.Delete(id)

			biff.AssertEqual(db.TickAll(), map[string]int{"world": 1})
			biff.AssertEqual(db.TickAll(), map[string]int{"world": 0})
		})
	})
}

func TestDatabase_StartStop(t *testing.T) {

	db, buf := newTestDatabase(5 * time.Millisecond)
	r, _ := db.CreateRegistry("world")
	id, _ := r.Create()
	r.Delete(id)

	done := make(chan error)
	go func() {
		done <- db.Start()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for r.Stats().Entities.Killed == 0 {
		if time.Now().After(deadline) {
			t.Fatal("automatic tick did not happen")
		}
		time.Sleep(time.Millisecond)
	}

	biff.AssertNil(db.Stop())
	biff.AssertNil(db.Stop())
	biff.AssertNil(<-done)
	biff.AssertEqual(db.GetStatus(), StatusClosing)
	biff.AssertTrue(strings.Contains(buf.String(), "tick world 1"))
}
