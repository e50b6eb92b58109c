package api

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
)

// RecoverFromPanic turns a panic in a handler into a 500 response. Panics
// signal programming errors, so the stack is logged.
func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			log.Printf("PANIC: %v\n%s", err, debug.Stack())
			w := box.GetResponse(ctx)
			w.WriteHeader(http.StatusInternalServerError)
			PrettyError{
				Message:     "internal error",
				Description: "Unexpected error",
			}.MarshalTo(w)
		}()
		next(ctx)
	}
}

func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
