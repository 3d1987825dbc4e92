package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

// pathParam returns a trimmed chi URL parameter. An empty value is a
// validation error.
func pathParam(r *http.Request, param string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{"path." + param: domain.MsgRequired},
		}
	}
	return raw, nil
}

// sessionParam reads the {id} path parameter of a session route and returns
// r with the session ID added to its request logger.
func sessionParam(r *http.Request) (*http.Request, string, error) {
	id, err := pathParam(r, "id")
	if err != nil {
		return r, "", err
	}
	return r.WithContext(logging.With(r.Context(), slog.String("session_id", id))), id, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing response",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

const maxBodyBytes = 1 << 20

type validatable interface {
	Validate() error
}

// decodeAndValidate reads a JSON body of at most 1 MiB into dst and runs its
// Validate. On failure the problem response is already written.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil {
		msg := "malformed JSON"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = fmt.Sprintf("larger than %d bytes", tooLarge.Limit)
		}
		dto.WriteProblem(w, r, &domain.ValidationError{Fields: map[string]string{"body": msg}})
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteProblem(w, r, err)
		return false
	}
	return true
}
