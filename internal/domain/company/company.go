// Package company holds the Company entity and the pure
// filter/sort/paginate pipeline applied to an in-memory collection.
package company

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/company-directory/internal/domain"
)

// Company is a single directory record. Companies are immutable once loaded;
// the full set is the result of one fetch.
type Company struct {
	ID          string
	Name        string
	Logo        string
	Location    string
	Industry    string
	Size        string
	Website     string
	Description string
}

// Validate checks the fields every record must carry.
// Returns a *domain.ValidationError with per-field details, or nil.
func (c *Company) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(c.ID) == "" {
		fields["id"] = domain.MsgRequired
	}
	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidateCollection validates every record and the uniqueness of IDs.
// A collection is accepted or rejected as a whole; the first failing
// record is reported with its index.
func ValidateCollection(companies []Company) error {
	seen := make(map[string]int, len(companies))
	for i := range companies {
		c := &companies[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("company[%d]: %w", i, err)
		}
		if prev, dup := seen[c.ID]; dup {
			return &domain.ValidationError{Fields: map[string]string{
				fmt.Sprintf("company[%d].id", i): fmt.Sprintf("duplicate of company[%d] (%q)", prev, c.ID),
			}}
		}
		seen[c.ID] = i
	}
	return nil
}

// FindByID returns the company with the given ID.
// Returns domain.ErrNotFound if no record matches.
func FindByID(companies []Company, id string) (*Company, error) {
	for i := range companies {
		if companies[i].ID == id {
			c := companies[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("company %q: %w", id, domain.ErrNotFound)
}
