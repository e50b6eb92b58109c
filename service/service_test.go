package service

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/nitric/database"
)

func TestService(t *testing.T) {

	biff.Alternative("Service", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Logger: log.New(io.Discard, "", 0),
		})
		s := NewService(db)

		_, err := s.CreateRegistry("world")
		biff.AssertNil(err)

		a.Alternative("Invalid names", func(a *biff.A) {
			for _, name := range []string{"", "  ", "a/b", "a:b"} {
				_, err := s.CreateRegistry(name)
				biff.AssertEqual(err, ErrorInvalidName)
			}
		})

		a.Alternative("Already exists", func(a *biff.A) {
			_, err := s.CreateRegistry("world")
			biff.AssertTrue(errors.Is(err, ErrorRegistryAlreadyExists))
		})

		a.Alternative("Delete", func(a *biff.A) {
			biff.AssertNil(s.DeleteRegistry("world"))
			_, err := s.GetRegistry("world")
			biff.AssertTrue(errors.Is(err, ErrorRegistryNotFound))
			biff.AssertEqual(len(s.ListRegistries()), 0)
		})
	})
}
