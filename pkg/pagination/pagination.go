package pagination

import (
	"net/http"
	"strconv"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	// maxPerPage caps page size so a single request cannot pull the whole
	// catalog.
	maxPerPage = 100
)

// Params holds the page window requested through the query string.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page at the default page size.
func DefaultParams() Params {
	return Params{
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}
}

// FromRequest reads page and per_page from the query string. Values that are
// missing, unparsable, non-positive, or over the cap fall back to defaults
// rather than erroring, so a sloppy client still gets a sensible page.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if v, ok := queryInt(r, "page"); ok && v > 0 {
		p.Page = v
	}
	if v, ok := queryInt(r, "per_page"); ok && v > 0 && v <= maxPerPage {
		p.PerPage = v
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

func queryInt(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Result is one page of a listing plus the bookkeeping a client needs to
// render pagination controls.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult assembles a page result. A nil data slice becomes an empty slice
// so list responses never serialize as null.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
