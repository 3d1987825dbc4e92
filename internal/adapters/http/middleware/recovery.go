package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

// errPanic is all a client learns about a recovered panic.
var errPanic = errors.New("internal server error")

// Recovery turns a handler panic into a logged stack trace and, when nothing
// has been written yet, a 500 problem response. http.ErrAbortHandler is
// re-panicked so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logging.OrDiscard(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "handler panicked",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.wroteHeader {
					dto.WriteProblem(rec, r, errPanic)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
