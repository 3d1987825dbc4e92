// Package static implements the company source backed by a JSON document on
// local disk, and a watcher that reloads the collection when that document
// changes.
package static

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jsamuelsen11/company-directory/internal/adapters/clients/acl/company"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	domcompany "github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

var _ ports.CompanySource = (*Source)(nil)

// Source reads the company collection from a JSON file. The document uses
// the same schema as the remote directory API: a bare array of companies or
// an object with a "companies" field.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a Source for the file at path.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// Path returns the file the source reads.
func (s *Source) Path() string {
	return s.path
}

// ListCompanies reads, decodes, and validates the whole file. Every failure
// wraps domain.ErrFetchFailed.
func (s *Source) ListCompanies(ctx context.Context) ([]domcompany.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", s.path, domain.ErrFetchFailed, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", s.path, domain.ErrFetchFailed, err)
	}

	var dto company.CompanyListDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %w", s.path, domain.ErrFetchFailed, err)
	}

	companies := company.ToDomainCompanyList(dto)
	if err := domcompany.ValidateCollection(companies); err != nil {
		s.logger.ErrorContext(ctx, "static collection rejected",
			slog.String("operation", "static.ListCompanies"),
			slog.String("path", s.path),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("validating %s: %w: %w", s.path, domain.ErrFetchFailed, err)
	}

	return companies, nil
}

// Name identifies the source in the health registry.
func (s *Source) Name() string {
	return "companies-file"
}

// HealthCheck reports whether the file exists and is a regular file.
func (s *Source) HealthCheck(_ context.Context) error {
	info, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: missing", s.path)
	case err != nil:
		return fmt.Errorf("%s: %w", s.path, err)
	case !info.Mode().IsRegular():
		return fmt.Errorf("%s: not a regular file", s.path)
	default:
		return nil
	}
}
