package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// Timeout bounds each request with a context deadline. If the handler has not
// produced any output when the deadline passes, the client gets a 504; a
// handler that already started writing keeps the connection.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			guarded := &guardedWriter{ResponseWriter: w}
			finished := make(chan struct{})
			go func() {
				defer close(finished)
				next.ServeHTTP(guarded, r.WithContext(ctx))
			}()

			select {
			case <-finished:
			case <-ctx.Done():
				if guarded.touched.CompareAndSwap(false, true) {
					slog.Warn("request deadline exceeded",
						"method", r.Method,
						"path", r.URL.Path,
						"limit", limit,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					w.Write([]byte(`{"error":"request timeout"}`))
				}
			}
		})
	}
}

// guardedWriter marks the response as started so the timeout path never
// writes a second status line onto a stream the handler already used.
type guardedWriter struct {
	http.ResponseWriter
	touched atomic.Bool
}

func (g *guardedWriter) WriteHeader(code int) {
	if g.touched.CompareAndSwap(false, true) {
		g.ResponseWriter.WriteHeader(code)
	}
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.touched.Store(true)
	return g.ResponseWriter.Write(b)
}
