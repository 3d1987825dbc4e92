package company

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of companies shown per page.
const DefaultPageSize = 12

// Page is one fixed-size slice of the filtered, sorted collection.
type Page struct {
	Items      []Company
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists.
func (p *Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// ShowPagination reports whether pagination controls apply. Zero or one
// page means no controls.
func (p *Page) ShowPagination() bool {
	return p.TotalPages > 1
}

// ApplyFilters returns the companies whose name contains search
// (case-insensitive), whose location is in locations, and whose industry is
// in industries. An empty search or set disables that condition. The input
// slice is not modified.
func ApplyFilters(companies []Company, search string, locations, industries []string) []Company {
	needle := strings.ToLower(search)

	out := make([]Company, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if len(locations) > 0 && !slices.Contains(locations, c.Location) {
			continue
		}
		if len(industries) > 0 && !slices.Contains(industries, c.Industry) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

// ApplySort returns a copy of companies sorted by name using English
// collation rules.
func ApplySort(companies []Company, order SortOrder) []Company {
	return ApplySortIn(language.English, companies, order)
}

// ApplySortIn returns a copy of companies sorted by name using the collation
// rules of tag. Equal names keep their input order in both directions.
func ApplySortIn(tag language.Tag, companies []Company, order SortOrder) []Company {
	// A Collator keeps scratch buffers and must not be shared across goroutines.
	col := collate.New(tag)

	sorted := slices.Clone(companies)
	slices.SortStableFunc(sorted, func(a, b Company) int {
		cmp := col.CompareString(a.Name, b.Name)
		if order == SortDesc {
			return -cmp
		}
		return cmp
	})
	return sorted
}

// Paginate returns the 1-based page of companies at the given page size,
// clipped to the bounds of the slice. A page or size below 1 yields an
// empty slice.
func Paginate(companies []Company, page, size int) []Company {
	if page < 1 || size < 1 {
		return []Company{}
	}
	start := (page - 1) * size
	if start >= len(companies) {
		return []Company{}
	}
	end := min(start+size, len(companies))
	return slices.Clone(companies[start:end])
}

// TotalPages returns ceil(total/size). It is 0 for an empty collection or a
// non-positive size.
func TotalPages(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// Field names a Company attribute that can be listed as filter options.
type Field string

const (
	FieldLocation Field = "location"
	FieldIndustry Field = "industry"
	FieldSize     Field = "size"
)

// UniqueValues returns the distinct values of field across companies in
// ascending byte order. Unknown fields yield an empty slice.
func UniqueValues(companies []Company, field Field) []string {
	values := make([]string, 0, len(companies))
	for i := range companies {
		switch field {
		case FieldLocation:
			values = append(values, companies[i].Location)
		case FieldIndustry:
			values = append(values, companies[i].Industry)
		case FieldSize:
			values = append(values, companies[i].Size)
		}
	}
	slices.Sort(values)
	return slices.Compact(values)
}

// Apply runs the full pipeline (filter, sort, paginate) and returns the
// requested page with its totals.
func Apply(companies []Company, f Filter, page, size int) Page {
	return ApplyIn(language.English, companies, f, page, size)
}

// ApplyIn is Apply with an explicit collation locale.
func ApplyIn(tag language.Tag, companies []Company, f Filter, page, size int) Page {
	filtered := ApplyFilters(companies, f.Search, f.Locations, f.Industries)
	sorted := ApplySortIn(tag, filtered, f.Order())

	return Page{
		Items:      Paginate(sorted, page, size),
		Number:     page,
		Size:       size,
		TotalItems: len(sorted),
		TotalPages: TotalPages(len(sorted), size),
	}
}
