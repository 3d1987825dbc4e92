package company

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/company-directory/internal/domain"
)

// SortOrder is the direction of the name sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid returns true if the order is one of the defined constants.
func (o SortOrder) IsValid() bool {
	switch o {
	case SortAsc, SortDesc:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}

// ParseSortOrder parses "asc" or "desc" case-insensitively. An empty string
// yields SortAsc.
func ParseSortOrder(raw string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	if o == "" {
		return SortAsc, nil
	}
	if !o.IsValid() {
		return "", &domain.ValidationError{
			Fields: map[string]string{"sort": fmt.Sprintf("must be asc or desc, got %q", raw)},
		}
	}
	return o, nil
}

// Filter holds the search, location, industry, and sort selections that
// drive the visible subset. Empty Search, Locations, or Industries mean
// "no filter" for that dimension. A zero-value SortOrder sorts ascending.
type Filter struct {
	Search     string
	Locations  []string
	Industries []string
	SortOrder  SortOrder
}

// Order returns the effective sort order, defaulting to SortAsc.
func (f Filter) Order() SortOrder {
	if f.SortOrder == "" {
		return SortAsc
	}
	return f.SortOrder
}
