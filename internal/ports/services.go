package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/domain/company"
)

// DirectoryService defines the service port for read-only queries over the
// loaded collection. Implemented by the application layer; called by handlers.
type DirectoryService interface {
	// ListCompanies runs filter, sort, and paginate over the collection.
	// Blocks until the loader settles or ctx expires. Returns
	// domain.ErrFetchFailed when the load failed and domain.ErrLoading when
	// ctx expires first.
	ListCompanies(ctx context.Context, filter company.Filter, page int) (*company.Page, error)

	// GetCompany returns a single company by ID.
	// Returns domain.ErrNotFound if no company has that ID.
	GetCompany(ctx context.Context, id string) (*company.Company, error)

	// Facets returns the location, industry, and size option lists.
	Facets(ctx context.Context) (*company.Facets, error)

	// Status reports the loader state without blocking.
	Status(ctx context.Context) LoadStatus

	// Refetch starts a new load, superseding any load in flight.
	Refetch(ctx context.Context)
}

// LoadStatus describes the loader state as exposed to clients.
type LoadStatus struct {
	State     string
	Companies int
	Error     string
	Attempts  int
	LoadedAt  time.Time
}

// SessionService defines the service port for server-side page controllers.
// Each session holds the state of one directory browser.
type SessionService interface {
	// CreateSession starts a session with no filters on page 1.
	// Returns domain.ErrCapacity when the session limit is reached.
	CreateSession(ctx context.Context) (*Session, error)

	// GetSession returns the current view of a session.
	// Returns domain.ErrNotFound if the session does not exist or expired.
	GetSession(ctx context.Context, id string) (*Session, error)

	// UpdateSession applies the non-nil fields of update in a fixed order
	// (reset, search, locations, industries, sort, page) and returns the
	// resulting view. Returns domain.ErrNotFound or domain.ErrValidation.
	UpdateSession(ctx context.Context, id string, update SessionUpdate) (*Session, error)

	// DeleteSession stops a session and releases its timer.
	// Returns domain.ErrNotFound if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}

// Session pairs a session ID with its current view.
type Session struct {
	ID       string
	View     company.BrowseView
	LastSeen time.Time
}

// SessionUpdate carries a partial change to a session. Nil fields are left
// untouched.
type SessionUpdate struct {
	Reset        bool
	Search       *string
	CommitSearch bool
	Locations    *[]string
	Industries   *[]string
	SortOrder    *company.SortOrder
	Page         *int
}
