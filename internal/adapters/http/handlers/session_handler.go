package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// SessionHandler handles browse session lifecycle and state changes.
type SessionHandler struct {
	svc ports.SessionService
}

// NewSessionHandler creates a new SessionHandler with the given service port.
func NewSessionHandler(svc ports.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreateSession handles POST /api/v1/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.CreateSession(r.Context())
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sessions/"+s.ID)
	writeJSON(w, r, http.StatusCreated, dto.ToSessionResponse(s))
}

// GetSession handles GET /api/v1/sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	r, id, err := sessionParam(r)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	s, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToSessionResponse(s))
}

// UpdateSession handles PATCH /api/v1/sessions/{id}.
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	r, id, err := sessionParam(r)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	var req dto.UpdateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.svc.UpdateSession(r.Context(), id, req.ToSessionUpdate())
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToSessionResponse(s))
}

// DeleteSession handles DELETE /api/v1/sessions/{id}.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	r, id, err := sessionParam(r)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
