package company

// Facets lists the option values offered by the filter controls.
type Facets struct {
	Locations  []string
	Industries []string
	Sizes      []string
}

// FacetsOf derives the option lists from the full collection, not the
// filtered subset, so a selection never hides its own alternatives.
func FacetsOf(companies []Company) Facets {
	return Facets{
		Locations:  UniqueValues(companies, FieldLocation),
		Industries: UniqueValues(companies, FieldIndustry),
		Sizes:      UniqueValues(companies, FieldSize),
	}
}

// BrowseView is what a page controller renders: the search draft as typed,
// the filter currently applied, the visible page, and the option lists.
type BrowseView struct {
	Draft         string
	Filter        Filter
	Page          Page
	Facets        Facets
	SearchPending bool
}
