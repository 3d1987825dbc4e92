package acl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jsamuelsen11/company-directory/internal/adapters/clients/acl/company"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	domcompany "github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/httpclient"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

var _ ports.CompanySource = (*CompanyClient)(nil)

// CompanyClient is the outbound adapter for a remote directory API. It
// implements [ports.CompanySource] and [ports.HealthChecker].
//
// The payload is translated by the [company] sub-package and validated as a
// whole before it is returned. Any failure, whether transport, status,
// decoding, or validation, is wrapped in [domain.ErrFetchFailed] so the loader
// sees a single fetch error kind.
//
// When the API tags its payload with an ETag, later fetches are conditional
// and a 304 Not Modified answer reuses the last validated collection.
type CompanyClient struct {
	req    *Requester
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	etag   string
	cached []domcompany.Company
}

// NewCompanyClient creates a CompanyClient that fetches path relative to the
// client's base URL (e.g. "/companies").
func NewCompanyClient(client *httpclient.Client, path string, logger *slog.Logger) *CompanyClient {
	return &CompanyClient{
		req:    NewRequester(client, logger),
		path:   path,
		logger: logger,
	}
}

// ListCompanies fetches and validates the full collection.
func (c *CompanyClient) ListCompanies(ctx context.Context) ([]domcompany.Company, error) {
	c.mu.Lock()
	etag, cached := c.etag, c.cached
	c.mu.Unlock()

	var dto company.CompanyListDTO
	newTag, notModified, err := c.req.GetJSONIfChanged(ctx, c.path, etag, &dto)
	if err != nil {
		return nil, fmt.Errorf("fetching companies from %s%s: %w: %w", c.req.BaseURL(), c.path, domain.ErrFetchFailed, err)
	}
	if notModified {
		c.logger.DebugContext(ctx, "remote collection unchanged",
			slog.String("etag", etag),
			slog.Int("count", len(cached)),
		)
		return slices.Clone(cached), nil
	}

	companies := company.ToDomainCompanyList(dto)
	if err := domcompany.ValidateCollection(companies); err != nil {
		c.logger.ErrorContext(ctx, "remote collection rejected",
			slog.String("operation", "CompanyClient.ListCompanies"),
			slog.Int("count", len(companies)),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("validating companies from %s: %w: %w", c.path, domain.ErrFetchFailed, err)
	}

	c.mu.Lock()
	c.etag = newTag
	c.cached = nil
	if newTag != "" {
		c.cached = slices.Clone(companies)
	}
	c.mu.Unlock()

	return companies, nil
}
