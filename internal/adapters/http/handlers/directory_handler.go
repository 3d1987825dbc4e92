// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/company-directory/internal/adapters/http/dto"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// DirectoryHandler handles the read-only company query endpoints.
type DirectoryHandler struct {
	svc ports.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler with the given service port.
func NewDirectoryHandler(svc ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListCompanies handles GET /api/v1/companies.
func (h *DirectoryHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseListCompaniesQuery(r.URL.Query())
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	page, err := h.svc.ListCompanies(r.Context(), q.Filter(), q.Page)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToPageResponse(page))
}

// GetCompany handles GET /api/v1/companies/{id}.
func (h *DirectoryHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	c, err := h.svc.GetCompany(r.Context(), id)
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToCompanyResponse(c))
}

// Facets handles GET /api/v1/facets.
func (h *DirectoryHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.svc.Facets(r.Context())
	if err != nil {
		dto.WriteProblem(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToFacetsResponse(facets))
}

// Status handles GET /api/v1/status. It never waits for a load.
func (h *DirectoryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.svc.Status(r.Context())
	writeJSON(w, r, http.StatusOK, dto.ToStatusResponse(&status))
}

// Refetch handles POST /api/v1/refetch. The load runs in the background;
// poll the status endpoint for the outcome.
func (h *DirectoryHandler) Refetch(w http.ResponseWriter, r *http.Request) {
	h.svc.Refetch(r.Context())

	status := h.svc.Status(r.Context())
	writeJSON(w, r, http.StatusAccepted, dto.ToStatusResponse(&status))
}
