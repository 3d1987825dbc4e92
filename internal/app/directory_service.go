package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/jsamuelsen11/company-directory/internal/app/loader"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

var _ ports.DirectoryService = (*DirectoryService)(nil)

// CollectionLoader is the part of *loader.Loader the services depend on.
type CollectionLoader interface {
	Wait(ctx context.Context) error
	Snapshot() loader.Snapshot
	Companies() []company.Company
	Refetch()
}

// DirectoryService implements ports.DirectoryService over a CollectionLoader.
// Each query reads the current collection and runs the pure pipeline; no
// state is kept between calls.
type DirectoryService struct {
	loader   CollectionLoader
	pageSize int
	locale   language.Tag
	logger   *slog.Logger
}

// NewDirectoryService creates a DirectoryService. Page size and collation
// locale come from the directory configuration.
func NewDirectoryService(cfg *config.DirectoryConfig, l CollectionLoader, logger *slog.Logger) *DirectoryService {
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = company.DefaultPageSize
	}
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		locale = language.English
	}

	return &DirectoryService{
		loader:   l,
		pageSize: pageSize,
		locale:   locale,
		logger:   logging.OrDiscard(logger),
	}
}

// ListCompanies returns one page of the filtered, sorted collection. Pages
// past the end are empty rather than an error.
func (s *DirectoryService) ListCompanies(ctx context.Context, filter company.Filter, page int) (*company.Page, error) {
	if page < 1 {
		return nil, &domain.ValidationError{Fields: map[string]string{"page": "must be at least 1"}}
	}
	order, err := company.ParseSortOrder(filter.SortOrder.String())
	if err != nil {
		return nil, err
	}
	filter.SortOrder = order

	companies, err := s.collection(ctx, "ListCompanies")
	if err != nil {
		return nil, err
	}

	result := company.ApplyIn(s.locale, companies, filter, page, s.pageSize)
	s.logger.DebugContext(ctx, "listed companies",
		slog.String("search", filter.Search),
		slog.Int("page", page),
		slog.Int("total", result.TotalItems),
	)
	return &result, nil
}

// GetCompany returns the company with the given ID.
func (s *DirectoryService) GetCompany(ctx context.Context, id string) (*company.Company, error) {
	companies, err := s.collection(ctx, "GetCompany")
	if err != nil {
		return nil, err
	}

	return company.FindByID(companies, id)
}

// Facets returns the filter option lists derived from the whole collection.
func (s *DirectoryService) Facets(ctx context.Context) (*company.Facets, error) {
	companies, err := s.collection(ctx, "Facets")
	if err != nil {
		return nil, err
	}

	facets := company.FacetsOf(companies)
	return &facets, nil
}

// Status reports the loader state without waiting.
func (s *DirectoryService) Status(_ context.Context) ports.LoadStatus {
	snap := s.loader.Snapshot()

	status := ports.LoadStatus{
		State:     snap.State.String(),
		Companies: len(snap.Companies),
		Attempts:  snap.Attempts,
		LoadedAt:  snap.LoadedAt,
	}
	if snap.Err != nil {
		status.Error = snap.Err.Error()
	}
	return status
}

// Refetch starts a new load, superseding any load in flight.
func (s *DirectoryService) Refetch(ctx context.Context) {
	s.logger.InfoContext(ctx, "refetch requested")
	s.loader.Refetch()
}

// collection returns the collection to query. While a refetch is running the
// previous collection is served; before the first success the call waits
// for the loader to settle, bounded by ctx.
func (s *DirectoryService) collection(ctx context.Context, operation string) ([]company.Company, error) {
	snap := s.loader.Snapshot()
	if snap.State == loader.StateLoading && snap.Companies != nil {
		return snap.Companies, nil
	}

	if err := s.loader.Wait(ctx); err != nil {
		s.logger.WarnContext(ctx, "collection not ready before deadline",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrLoading, err)
	}

	snap = s.loader.Snapshot()
	switch snap.State {
	case loader.StateSuccess:
		return snap.Companies, nil
	case loader.StateError:
		s.logger.ErrorContext(ctx, "collection unavailable",
			slog.String("operation", operation),
			slog.Any("error", snap.Err),
		)
		return nil, snap.Err
	case loader.StateLoading:
		if snap.Companies != nil {
			return snap.Companies, nil
		}
		return nil, domain.ErrLoading
	default:
		return nil, errors.Join(domain.ErrLoading, errors.New("loader not started"))
	}
}
