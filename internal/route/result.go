package route

import (
	"fmt"

	"github.com/marholt/satview/internal/apperr"
	"github.com/marholt/satview/internal/catalog"
	"github.com/marholt/satview/internal/query"
)

// ResultType discriminates the result union.
type ResultType string

// Result types.
const (
	ResultCategories      ResultType = "categories"
	ResultCategoryResults ResultType = "category-results"
	ResultSearchResults   ResultType = "search-results"
	ResultSatelliteDetail ResultType = "satellite-detail"
	ResultError           ResultType = "error"
)

// Result is the typed outcome of resolving a route. Exactly the fields for
// its type are populated; it is always derived fresh from the catalog.
type Result struct {
	Type       ResultType                `json:"type"`
	Categories []query.CategoryInfo      `json:"categories,omitempty"`
	Satellites []catalog.SatelliteRecord `json:"satellites,omitempty"`
	TotalCount int                       `json:"totalCount,omitempty"`
	Category   string                    `json:"category,omitempty"`
	Satellite  *catalog.SatelliteRecord  `json:"satellite,omitempty"`
	Message    string                    `json:"message,omitempty"`
}

// IsError reports whether the result carries an error message.
func (r Result) IsError() bool {
	return r.Type == ResultError
}

// Resolver resolves routes against the catalog query service.
type Resolver struct {
	svc *query.Service
}

// NewResolver creates a resolver over the given query service.
func NewResolver(svc *query.Service) *Resolver {
	return &Resolver{svc: svc}
}

// Handle resolves a route into a result. An empty list is success; only a
// missing satellite id or an unknown satellite fails. On failure the typed
// error result is returned alongside the underlying sentinel so callers can
// map it to a transport status.
func (rs *Resolver) Handle(r Route) (Result, error) {
	switch r.Type {
	case TypeCategory:
		if r.Category == "" {
			return Result{
				Type:       ResultCategories,
				Categories: rs.svc.Categories(),
			}, nil
		}
		br := rs.svc.BrowseByCategory(r.Category, r.Filters)
		return Result{
			Type:       ResultCategoryResults,
			Satellites: br.Satellites,
			TotalCount: br.TotalCount,
			Category:   br.Category,
		}, nil

	case TypeSatellite:
		if r.SatelliteID == "" {
			return errorResult("Satellite ID required"), apperr.ErrInvalidRoute
		}
		rec, err := rs.svc.Detail(r.SatelliteID)
		if err != nil {
			return errorResult(fmt.Sprintf("Satellite '%s' not found", r.SatelliteID)), err
		}
		return Result{Type: ResultSatelliteDetail, Satellite: &rec}, nil

	case TypeSearch:
		sr := rs.svc.Search(r.Filters)
		return Result{
			Type:       ResultSearchResults,
			Satellites: sr.Satellites,
			TotalCount: sr.TotalCount,
		}, nil
	}

	return errorResult("unknown route type"), apperr.ErrInvalidRoute
}

func errorResult(msg string) Result {
	return Result{Type: ResultError, Message: msg}
}
