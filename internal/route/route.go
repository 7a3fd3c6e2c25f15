// Package route implements the browser navigation model: parsing a path and
// query parameters into a typed route, generating the canonical URL for a
// route, and resolving a route against the catalog query service.
package route

import (
	"net/url"
	"strings"

	"github.com/marholt/satview/internal/query"
)

// Type discriminates the route union.
type Type string

// Route types.
const (
	TypeCategory  Type = "category"
	TypeSatellite Type = "satellite"
	TypeSearch    Type = "search"
)

const pathPrefix = "browser"

// Route is a typed navigation intent. Category and SatelliteID are set only
// for the corresponding types; a zero Filters value means no filters.
type Route struct {
	Type        Type          `json:"type"`
	Category    string        `json:"category,omitempty"`
	SatelliteID string        `json:"satelliteId,omitempty"`
	Filters     query.Filters `json:"filters,omitempty"`
}

// Parse turns a path and query parameters into a Route. The path may carry
// an inline query string; explicit params override inline values per key.
// Parsing fails (ok=false) for any path outside the browser grammar,
// including a satellite path with a missing or empty id segment.
func Parse(path string, params url.Values) (Route, bool) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		if inline, err := url.ParseQuery(path[i+1:]); err == nil {
			for k, vs := range params {
				inline[k] = vs
			}
			params = inline
		}
		path = path[:i]
	}

	segments := splitPath(path)
	if len(segments) == 0 || segments[0] != pathPrefix {
		return Route{}, false
	}
	// A bare /browser is the default view: the category listing.
	if len(segments) == 1 {
		return Route{Type: TypeCategory}, true
	}

	switch segments[1] {
	case "category":
		switch len(segments) {
		case 2:
			return Route{Type: TypeCategory}, true
		case 3:
			if segments[2] == "" {
				return Route{}, false
			}
			return Route{
				Type:     TypeCategory,
				Category: segments[2],
				Filters:  parseFilters(params),
			}, true
		}
		return Route{}, false

	case "satellite":
		if len(segments) != 3 || segments[2] == "" {
			return Route{}, false
		}
		return Route{Type: TypeSatellite, SatelliteID: segments[2]}, true

	case "search":
		if len(segments) != 2 {
			return Route{}, false
		}
		return Route{Type: TypeSearch, Filters: parseFilters(params)}, true
	}

	return Route{}, false
}

// GenerateURL is the canonical inverse of Parse. Filters not on the query
// whitelist are dropped; that lossiness is part of the contract.
func (r Route) GenerateURL() string {
	var b strings.Builder
	b.WriteString("/" + pathPrefix)

	switch r.Type {
	case TypeCategory:
		b.WriteString("/category")
		if r.Category != "" {
			b.WriteString("/" + url.PathEscape(r.Category))
		}
	case TypeSatellite:
		b.WriteString("/satellite/" + url.PathEscape(r.SatelliteID))
	case TypeSearch:
		b.WriteString("/search")
	}

	if qs := encodeFilters(r.Filters); qs != "" {
		b.WriteString("?" + qs)
	}
	return b.String()
}

// parseFilters reads the whitelisted filter keys from query parameters.
// Unknown or out-of-enum sortBy/sortOrder values are silently dropped so
// stale bookmarked URLs keep working.
func parseFilters(params url.Values) query.Filters {
	if params == nil {
		return query.Filters{}
	}
	f := query.Filters{
		Name: params.Get("name"),
		Type: params.Get("type"),
	}
	switch v := params.Get("sortBy"); v {
	case query.SortByName, query.SortByType, query.SortByLaunchDate:
		f.SortBy = v
	}
	switch v := params.Get("sortOrder"); v {
	case query.SortAsc, query.SortDesc:
		f.SortOrder = v
	}
	return f
}

// encodeFilters builds the query string from present filter fields in the
// fixed key order name, type, sortBy, sortOrder.
func encodeFilters(f query.Filters) string {
	var pairs []string
	add := func(key, val string) {
		if val != "" {
			pairs = append(pairs, key+"="+url.QueryEscape(val))
		}
	}
	add("name", f.Name)
	add("type", f.Type)
	add("sortBy", f.SortBy)
	add("sortOrder", f.SortOrder)
	return strings.Join(pairs, "&")
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
