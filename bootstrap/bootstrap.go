package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"
	"golang.org/x/sync/errgroup"

	"github.com/fulldump/nitric/api"
	"github.com/fulldump/nitric/configuration"
	"github.com/fulldump/nitric/database"
	"github.com/fulldump/nitric/service"
)

var VERSION = "dev"

// Bootstrap wires the database, the API and the HTTP server. start blocks
// until stop is called or the process receives SIGINT or SIGTERM.
func Bootstrap(c *configuration.Configuration) (start, stop func() error, err error) {

	tickEvery, err := c.TickPeriod()
	if err != nil {
		return nil, nil, err
	}

	db := database.NewDatabase(&database.Config{
		TickEvery: tickEvery,
		Logger:    log.New(os.Stdout, "DB: ", log.LstdFlags),
	})

	b := api.Build(service.NewService(db), VERSION)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
		api.InterceptorUnavailable(db),
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", c.HttpAddr, err)
	}
	log.Println("listening on", c.HttpAddr)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	stopped := make(chan struct{})

	stopOnce := &sync.Once{}
	stop = func() error {
		var err error
		stopOnce.Do(func() {
			signal.Stop(signalChan)
			close(stopped)
			err = errors.Join(
				db.Stop(),
				s.Shutdown(context.Background()),
			)
		})
		return err
	}

	go func() {
		select {
		case sig := <-signalChan:
			log.Println("Signal received", sig.String())
			stop()
		case <-stopped:
		}
	}()

	start = func() error {
		g := &errgroup.Group{}

		g.Go(db.Start)

		g.Go(func() error {
			err := s.Serve(ln)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})

		return g.Wait()
	}

	return start, stop, nil
}
