package middleware

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
)

// Timeout bounds each request by d. The handler sees the deadline on its
// context and writes into a buffer; if it has not finished when the deadline
// passes, the client gets a 504 problem response and anything the handler
// writes afterwards fails with http.ErrHandlerTimeout. A panic in the handler
// is re-raised on the serving goroutine so Recovery still sees it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			buf := &bufferedResponse{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(buf, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				buf.mu.Lock()
				defer buf.mu.Unlock()
				buf.copyTo(w)
			case <-ctx.Done():
				buf.mu.Lock()
				buf.timedOut = true
				buf.mu.Unlock()

				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					dto.WriteProblem(w, r, fmt.Errorf("request exceeded %s: %w", d, ctx.Err()))
				}
			}
		})
	}
}

// bufferedResponse holds a handler's response until Timeout decides whether
// to send it.
type bufferedResponse struct {
	mu       sync.Mutex
	header   http.Header
	body     []byte
	status   int
	timedOut bool
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timedOut || b.status != 0 {
		return
	}
	b.status = code
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.body = append(b.body, p...)
	return len(p), nil
}

// copyTo sends the buffered response. b.mu must be held.
func (b *bufferedResponse) copyTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), b.header)
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}
