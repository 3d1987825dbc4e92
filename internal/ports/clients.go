package ports

import (
	"context"

	"github.com/jsamuelsen11/company-directory/internal/domain/company"
)

// CompanySource defines the client port that fetches the company collection.
// Implemented by the static file adapter and the remote ACL adapter; called by
// the loader.
type CompanySource interface {
	// ListCompanies fetches the whole collection in one call. The result is
	// all-or-nothing: a malformed or invalid payload returns an error wrapping
	// domain.ErrFetchFailed and no companies.
	ListCompanies(ctx context.Context) ([]company.Company, error)
}
