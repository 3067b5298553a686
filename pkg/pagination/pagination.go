package pagination

const (
	// DefaultPerPage is the standard page size when none is provided.
	DefaultPerPage = 15
	// MaxPerPage caps how many rows any page query can request.
	MaxPerPage = 100
)

// Limits bound per_page handling for one deployment. The zero value falls
// back to the package defaults; MaxPerPage never exceeds the package ceiling.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
}

// OrDefaults fills unset limits and clamps the cap to the package ceiling.
func (l Limits) OrDefaults() Limits {
	if l.DefaultPerPage <= 0 {
		l.DefaultPerPage = DefaultPerPage
	}
	if l.MaxPerPage <= 0 || l.MaxPerPage > MaxPerPage {
		l.MaxPerPage = MaxPerPage
	}
	return l
}

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Page wraps one page of items with the navigation metadata list views need.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
	Total    int64 `json:"total"`
}

// Normalize clamps the params to valid ranges.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	normalized := p.Normalize()
	return (normalized.Page - 1) * normalized.PerPage
}

// NewPage assembles a page object from a result slice and the total row count.
// An empty slice is a valid page, never an error.
func NewPage[T any](items []T, total int64, params Params) *Page[T] {
	normalized := params.Normalize()
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Page:     normalized.Page,
		PerPage:  normalized.PerPage,
		LastPage: lastPage(total, normalized.PerPage),
		Total:    total,
	}
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool {
	return p.Page < p.LastPage
}

// HasPrev reports whether an earlier page exists.
func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

func lastPage(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}
