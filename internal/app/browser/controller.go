// Package browser implements the page controller behind a directory browsing
// session: it holds the search draft, the applied filter, and the current
// page, and recomputes the visible page from the live collection.
//
// Search input is debounced: the draft changes on every keystroke, the
// applied search only after a quiet period. Committing a search and changing
// locations, industries, or sort order all return to page 1.
package browser

import (
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/debounce"
)

// DefaultSearchDebounce is the quiet period before a search draft is applied.
const DefaultSearchDebounce = 250 * time.Millisecond

// Collection supplies the current company collection. The loader satisfies
// it; the controller reads it on every view so refetches show up without
// recreating the controller.
type Collection interface {
	Companies() []company.Company
}

// Options configures a Controller.
type Options struct {
	PageSize       int
	SearchDebounce time.Duration
	Locale         language.Tag
}

// OptionsFromConfig builds Options from the directory configuration. A
// non-positive page size falls back to company.DefaultPageSize and an
// unparseable locale to English. A zero debounce applies searches at once.
func OptionsFromConfig(cfg *config.DirectoryConfig) Options {
	opts := Options{
		PageSize:       cfg.PageSize,
		SearchDebounce: cfg.SearchDebounce,
		Locale:         language.English,
	}
	if tag, err := language.Parse(cfg.Locale); err == nil {
		opts.Locale = tag
	}
	return opts.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.PageSize < 1 {
		o.PageSize = company.DefaultPageSize
	}
	if o.SearchDebounce < 0 {
		o.SearchDebounce = DefaultSearchDebounce
	}
	if o.Locale == language.Und {
		o.Locale = language.English
	}
	return o
}

// Controller holds one browser's state. Safe for concurrent use.
type Controller struct {
	collection Collection
	opts       Options
	debounce   *debounce.Debouncer

	mu     sync.Mutex
	draft  string
	filter company.Filter
	page   int
}

// New creates a Controller with no filters on page 1.
func New(collection Collection, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		collection: collection,
		opts:       opts,
		debounce:   debounce.New(opts.SearchDebounce),
		filter:     company.Filter{SortOrder: company.SortAsc},
		page:       1,
	}
}

// SetSearch records the search draft and schedules it to be applied after
// the debounce period. Each call restarts the period. Repeating the current
// draft is a no-op.
func (c *Controller) SetSearch(draft string) {
	c.mu.Lock()
	if draft == c.draft {
		c.mu.Unlock()
		return
	}
	c.draft = draft
	c.mu.Unlock()

	c.debounce.Debounce(c.commitSearch)
}

// FlushSearch applies the current draft immediately, skipping any pending
// debounce.
func (c *Controller) FlushSearch() {
	if !c.debounce.Pending() {
		return
	}
	c.debounce.Immediate(c.commitSearch)
}

// commitSearch applies the latest draft, not the one current when the
// timer was scheduled. The page only resets when the applied search changes.
func (c *Controller) commitSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter.Search == c.draft {
		return
	}
	c.filter.Search = c.draft
	c.page = 1
}

// SetLocations replaces the location selection and returns to page 1. Nil or
// empty means all locations.
func (c *Controller) SetLocations(locations []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.Locations = normalizeSet(locations)
	c.page = 1
}

// SetIndustries replaces the industry selection and returns to page 1. Nil
// or empty means all industries.
func (c *Controller) SetIndustries(industries []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.Industries = normalizeSet(industries)
	c.page = 1
}

// SetSortOrder changes the sort direction and returns to page 1. An invalid
// order is reported as a validation error and leaves the state unchanged.
func (c *Controller) SetSortOrder(order company.SortOrder) error {
	parsed, err := company.ParseSortOrder(order.String())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.SortOrder = parsed
	c.page = 1
	return nil
}

// SetPage moves to page n, clamped to [1, max(total pages, 1)].
func (c *Controller) SetPage(n int) {
	companies := c.collection.Companies()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = c.clampLocked(companies, n)
}

// Reset clears the draft, the applied filter, and any pending search, and
// returns to page 1.
func (c *Controller) Reset() {
	c.debounce.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = ""
	c.filter = company.Filter{SortOrder: company.SortAsc}
	c.page = 1
}

// View computes the visible page from the current collection. If the
// collection shrank since the page was chosen, the page is clamped.
func (c *Controller) View() company.BrowseView {
	companies := c.collection.Companies()
	pending := c.debounce.Pending()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = c.clampLocked(companies, c.page)
	filter := c.filterCopyLocked()

	return company.BrowseView{
		Draft:         c.draft,
		Filter:        filter,
		Page:          company.ApplyIn(c.opts.Locale, companies, filter, c.page, c.opts.PageSize),
		Facets:        company.FacetsOf(companies),
		SearchPending: pending,
	}
}

// Close drops any pending search. The controller stays usable.
func (c *Controller) Close() {
	c.debounce.Cancel()
}

func (c *Controller) clampLocked(companies []company.Company, n int) int {
	filtered := company.ApplyFilters(companies, c.filter.Search, c.filter.Locations, c.filter.Industries)
	last := max(company.TotalPages(len(filtered), c.opts.PageSize), 1)
	return min(max(n, 1), last)
}

func (c *Controller) filterCopyLocked() company.Filter {
	return company.Filter{
		Search:     c.filter.Search,
		Locations:  slices.Clone(c.filter.Locations),
		Industries: slices.Clone(c.filter.Industries),
		SortOrder:  c.filter.SortOrder,
	}
}

// normalizeSet returns a sorted copy of values without duplicates or empty
// strings, or nil when nothing remains.
func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
