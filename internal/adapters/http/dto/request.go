package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// MaxSearchLength bounds the search text accepted from clients, in runes.
const MaxSearchLength = 200

const (
	msgPositive = "must be a positive integer"
	msgSort     = "must be asc or desc"
)

// ListCompaniesQuery holds the query parameters of GET /api/v1/companies.
// Location and industry may be repeated or comma-separated.
type ListCompaniesQuery struct {
	Search     string
	Locations  []string
	Industries []string
	Sort       company.SortOrder
	Page       int
}

// ParseListCompaniesQuery reads and validates the listing query parameters.
// A missing page means 1 and a missing sort means ascending. Returns a
// *domain.ValidationError naming every bad parameter.
func ParseListCompaniesQuery(values url.Values) (ListCompaniesQuery, error) {
	fields := make(map[string]string)
	q := ListCompaniesQuery{
		Search:     values.Get("search"),
		Locations:  splitMulti(values["location"]),
		Industries: splitMulti(values["industry"]),
		Sort:       company.SortAsc,
		Page:       1,
	}

	if utf8.RuneCountInString(q.Search) > MaxSearchLength {
		fields["query.search"] = fmt.Sprintf("must be at most %d characters", MaxSearchLength)
	}

	if raw := values.Get("sort"); raw != "" {
		order, err := company.ParseSortOrder(raw)
		if err != nil {
			fields["query.sort"] = msgSort
		} else {
			q.Sort = order
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields["query.page"] = msgPositive
		} else {
			q.Page = page
		}
	}

	if len(fields) > 0 {
		return ListCompaniesQuery{}, &domain.ValidationError{Fields: fields}
	}
	return q, nil
}

// Filter returns the domain filter described by the query.
func (q ListCompaniesQuery) Filter() company.Filter {
	return company.Filter{
		Search:     q.Search,
		Locations:  q.Locations,
		Industries: q.Industries,
		SortOrder:  q.Sort,
	}
}

// splitMulti flattens repeated and comma-separated values, dropping blanks.
func splitMulti(raw []string) []string {
	var out []string
	for _, v := range raw {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// UpdateSessionRequest represents the JSON body of PATCH /api/v1/sessions/{id}.
// All fields are optional; nil means "do not change this field". An empty
// locations or industries array clears that filter.
type UpdateSessionRequest struct {
	Reset        bool      `json:"reset,omitempty"`
	Search       *string   `json:"search,omitempty"`
	CommitSearch bool      `json:"commit_search,omitempty"`
	Locations    *[]string `json:"locations,omitempty"`
	Industries   *[]string `json:"industries,omitempty"`
	SortOrder    *string   `json:"sort_order,omitempty"`
	Page         *int      `json:"page,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateSessionRequest) Validate() error {
	fields := make(map[string]string)

	if r.Search != nil && utf8.RuneCountInString(*r.Search) > MaxSearchLength {
		fields["search"] = fmt.Sprintf("must be at most %d characters", MaxSearchLength)
	}
	if r.SortOrder != nil && !company.SortOrder(strings.ToLower(*r.SortOrder)).IsValid() {
		fields["sort_order"] = fmt.Sprintf("%s, got %q", msgSort, *r.SortOrder)
	}
	if r.Page != nil && *r.Page < 1 {
		fields["page"] = msgPositive
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToSessionUpdate converts the request into a ports.SessionUpdate. Call
// Validate first.
func (r *UpdateSessionRequest) ToSessionUpdate() ports.SessionUpdate {
	u := ports.SessionUpdate{
		Reset:        r.Reset,
		Search:       r.Search,
		CommitSearch: r.CommitSearch,
		Locations:    r.Locations,
		Industries:   r.Industries,
		Page:         r.Page,
	}
	if r.SortOrder != nil {
		order := company.SortOrder(strings.ToLower(*r.SortOrder))
		u.SortOrder = &order
	}
	return u
}
