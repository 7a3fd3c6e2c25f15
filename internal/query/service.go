// Package query implements the catalog query service: category grouping,
// the shared filter/sort pipeline, free-text search, and id lookup. Every
// operation is a pure function of the live catalog snapshot at call time.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/marholt/satview/internal/apperr"
	"github.com/marholt/satview/internal/catalog"
)

// Sort keys accepted by Filters.SortBy. SortByLaunchDate is reserved: it is
// part of the public filter grammar but the catalog carries no launch date
// yet, so it sorts as a permanent tie.
const (
	SortByName       = "name"
	SortByType       = "type"
	SortByLaunchDate = "launchDate"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filters narrows and orders a record set. The zero value means no
// constraint and no explicit order.
type Filters struct {
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// CategoryInfo is a derived per-category summary. It is recomputed from the
// catalog on every call and never cached.
type CategoryInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// BrowseResult is the outcome of browsing one category.
type BrowseResult struct {
	Satellites []catalog.SatelliteRecord `json:"satellites"`
	TotalCount int                       `json:"totalCount"`
	Category   string                    `json:"category"`
}

// SearchResult is the outcome of a catalog-wide search.
type SearchResult struct {
	Satellites []catalog.SatelliteRecord `json:"satellites"`
	TotalCount int                       `json:"totalCount"`
}

// Service answers catalog queries. It reads through the store and holds no
// state of its own.
type Service struct {
	store *catalog.Store
}

// NewService creates a query service over the given store.
func NewService(store *catalog.Store) *Service {
	return &Service{store: store}
}

// Categories buckets the catalog by category and returns one summary per
// observed category, sorted by display name ascending with locale-aware
// collation. Categories with zero members never appear.
func (s *Service) Categories() []CategoryInfo {
	counts := make(map[string]int)
	for _, r := range s.store.All() {
		counts[r.Category]++
	}

	out := make([]CategoryInfo, 0, len(counts))
	for id, n := range counts {
		display := DisplayName(id)
		out = append(out, CategoryInfo{
			ID:          id,
			DisplayName: display,
			Description: describeCategory(id, display),
			Count:       n,
		})
	}

	c := collate.New(language.English)
	sort.Slice(out, func(i, j int) bool {
		return c.CompareString(out[i].DisplayName, out[j].DisplayName) < 0
	})
	return out
}

// BrowseByCategory returns the records matching category exactly, narrowed
// and ordered by filters. An empty result is success, not an error.
func (s *Service) BrowseByCategory(category string, filters Filters) BrowseResult {
	var matched []catalog.SatelliteRecord
	for _, r := range s.store.All() {
		if r.Category == category {
			matched = append(matched, r)
		}
	}
	matched = ApplyFilters(matched, filters)
	return BrowseResult{
		Satellites: matched,
		TotalCount: len(matched),
		Category:   category,
	}
}

// Search runs the shared filter pipeline over the whole catalog. Zero
// filters match everything.
func (s *Service) Search(filters Filters) SearchResult {
	matched := ApplyFilters(s.store.All(), filters)
	return SearchResult{
		Satellites: matched,
		TotalCount: len(matched),
	}
}

// Detail looks up a single record by id. An unknown id yields
// apperr.ErrNotFound.
func (s *Service) Detail(id string) (catalog.SatelliteRecord, error) {
	rec, ok := s.store.ByID(id)
	if !ok {
		return catalog.SatelliteRecord{}, apperr.ErrNotFound
	}
	return rec, nil
}

// ApplyFilters applies the shared pipeline in fixed order: name filter, type
// filter, then sort. Absent or unrecognized filter values mean "no
// constraint"; filtering never fails.
func ApplyFilters(records []catalog.SatelliteRecord, filters Filters) []catalog.SatelliteRecord {
	out := records

	if filters.Name != "" {
		needle := strings.ToLower(filters.Name)
		kept := make([]catalog.SatelliteRecord, 0, len(out))
		for _, r := range out {
			if strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(strings.ToLower(r.Shortname), needle) ||
				strings.Contains(strings.ToLower(r.ID), needle) {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	if filters.Type != "" {
		kept := make([]catalog.SatelliteRecord, 0, len(out))
		for _, r := range out {
			if r.Category == filters.Type {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	if filters.SortBy != "" {
		out = sortRecords(out, filters.SortBy, filters.SortOrder)
	}

	return out
}

// sortRecords sorts stably by the given key. Descending order negates the
// comparison rather than reversing the slice, so equal-key records keep
// their relative order either way. launchDate compares as a permanent tie.
func sortRecords(records []catalog.SatelliteRecord, sortBy, sortOrder string) []catalog.SatelliteRecord {
	var key func(catalog.SatelliteRecord) string
	switch sortBy {
	case SortByName:
		key = func(r catalog.SatelliteRecord) string { return r.Name }
	case SortByType:
		key = func(r catalog.SatelliteRecord) string { return r.Category }
	case SortByLaunchDate:
		key = func(catalog.SatelliteRecord) string { return "" }
	default:
		return records
	}

	out := make([]catalog.SatelliteRecord, len(records))
	copy(out, records)

	c := collate.New(language.English)
	desc := sortOrder == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(key(out[i]), key(out[j]))
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

// DisplayName converts a kebab-case category id into a Title Case label.
func DisplayName(id string) string {
	parts := strings.Split(id, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// categoryDescriptions maps known category ids to their blurbs. Unmapped
// ids fall back to a generated description rather than an empty string.
var categoryDescriptions = map[string]string{
	"earth-observation": "Imaging and remote-sensing satellites observing the planet",
	"communication":     "Relay satellites carrying voice, data, and broadcast traffic",
	"scientific":        "Research platforms and space observatories",
	"navigation":        "Positioning, navigation, and timing constellations",
	"weather":           "Meteorological observation satellites",
}

func describeCategory(id, displayName string) string {
	if d, ok := categoryDescriptions[id]; ok {
		return d
	}
	return "Satellites in the " + displayName + " category"
}
