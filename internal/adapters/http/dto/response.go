// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// CompanyResponse represents a single company in HTTP responses.
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Size        string `json:"size,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// ToCompanyResponse converts a domain Company to an HTTP response DTO.
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Logo:        c.Logo,
		Location:    c.Location,
		Industry:    c.Industry,
		Size:        c.Size,
		Website:     c.Website,
		Description: c.Description,
	}
}

// PageResponse represents one page of the filtered, sorted collection.
type PageResponse struct {
	Items          []CompanyResponse `json:"items"`
	Page           int               `json:"page"`
	PageSize       int               `json:"page_size"`
	TotalItems     int               `json:"total_items"`
	TotalPages     int               `json:"total_pages"`
	HasPrev        bool              `json:"has_prev"`
	HasNext        bool              `json:"has_next"`
	ShowPagination bool              `json:"show_pagination"`
	Summary        string            `json:"summary"`
}

// ToPageResponse converts a domain Page to an HTTP response DTO. Items is
// never null.
func ToPageResponse(p *company.Page) PageResponse {
	items := make([]CompanyResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ToCompanyResponse(&p.Items[i])
	}
	return PageResponse{
		Items:          items,
		Page:           p.Number,
		PageSize:       p.Size,
		TotalItems:     p.TotalItems,
		TotalPages:     p.TotalPages,
		HasPrev:        p.HasPrev(),
		HasNext:        p.HasNext(),
		ShowPagination: p.ShowPagination(),
		Summary:        fmt.Sprintf("Showing %d of %d companies", len(p.Items), p.TotalItems),
	}
}

// FacetsResponse lists the filter option values.
type FacetsResponse struct {
	Locations  []string `json:"locations"`
	Industries []string `json:"industries"`
	Sizes      []string `json:"sizes"`
}

// ToFacetsResponse converts domain Facets to an HTTP response DTO. Empty
// lists encode as [] rather than null.
func ToFacetsResponse(f *company.Facets) FacetsResponse {
	return FacetsResponse{
		Locations:  nonNil(f.Locations),
		Industries: nonNil(f.Industries),
		Sizes:      nonNil(f.Sizes),
	}
}

// StatusResponse reports the collection loader state.
type StatusResponse struct {
	State     string `json:"state"`
	Companies int    `json:"companies"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	LoadedAt  string `json:"loaded_at,omitempty"`
	// CanRetry is true when a manual refetch is the only way forward.
	CanRetry bool `json:"can_retry"`
}

// ToStatusResponse converts a ports.LoadStatus to an HTTP response DTO.
func ToStatusResponse(s *ports.LoadStatus) StatusResponse {
	resp := StatusResponse{
		State:     s.State,
		Companies: s.Companies,
		Attempts:  s.Attempts,
		Error:     s.Error,
		CanRetry:  s.State == "error",
	}
	if !s.LoadedAt.IsZero() {
		resp.LoadedAt = s.LoadedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// FilterResponse is the filter state applied to a session.
type FilterResponse struct {
	Search     string   `json:"search"`
	Locations  []string `json:"locations"`
	Industries []string `json:"industries"`
	SortOrder  string   `json:"sort_order"`
}

// SessionResponse represents a browse session and its current view.
type SessionResponse struct {
	ID            string         `json:"id"`
	Draft         string         `json:"draft"`
	SearchPending bool           `json:"search_pending"`
	Filter        FilterResponse `json:"filter"`
	Page          PageResponse   `json:"page"`
	Facets        FacetsResponse `json:"facets"`
	LastSeen      string         `json:"last_seen"`
}

// ToSessionResponse converts a ports.Session to an HTTP response DTO.
func ToSessionResponse(s *ports.Session) SessionResponse {
	v := &s.View
	return SessionResponse{
		ID:            s.ID,
		Draft:         v.Draft,
		SearchPending: v.SearchPending,
		Filter: FilterResponse{
			Search:     v.Filter.Search,
			Locations:  nonNil(v.Filter.Locations),
			Industries: nonNil(v.Filter.Industries),
			SortOrder:  v.Filter.Order().String(),
		},
		Page:     ToPageResponse(&v.Page),
		Facets:   ToFacetsResponse(&v.Facets),
		LastSeen: s.LastSeen.UTC().Format(time.RFC3339),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Readiness states.
const (
	ReadyStatus    = "ready"
	NotReadyStatus = "not_ready"
	checkPassed    = "pass"
	checkFailed    = "fail"
)

// CheckResponse is the outcome of one dependency check.
type CheckResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessResponse lists every dependency check, sorted by name.
type ReadinessResponse struct {
	Status string          `json:"status"`
	Checks []CheckResponse `json:"checks"`
}

// ToReadinessResponse summarizes registry results. The service is ready only
// when every check passed.
func ToReadinessResponse(results map[string]error) ReadinessResponse {
	resp := ReadinessResponse{Status: ReadyStatus, Checks: make([]CheckResponse, 0, len(results))}
	for _, name := range slices.Sorted(maps.Keys(results)) {
		check := CheckResponse{Name: name, Status: checkPassed}
		if err := results[name]; err != nil {
			check.Status = checkFailed
			check.Error = err.Error()
			resp.Status = NotReadyStatus
		}
		resp.Checks = append(resp.Checks, check)
	}
	return resp
}
