// Package render implements the rendering-selection pipeline: composable
// pure filters that reduce the full catalog to the bounded, prioritized,
// viewport-aware set a renderer may safely draw each frame.
package render

import (
	"strings"

	"github.com/marholt/satview/internal/catalog"
)

// ViewportBounds is the visible geographic window in degrees. It is supplied
// per query by the renderer and never retained.
type ViewportBounds struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	North float64 `json:"north"`
}

// ByEnabledTypes keeps only records whose category is in the enabled set.
func ByEnabledTypes(records []catalog.SatelliteRecord, enabled map[string]bool) []catalog.SatelliteRecord {
	out := make([]catalog.SatelliteRecord, 0, len(records))
	for _, r := range records {
		if enabled[r.Category] {
			out = append(out, r)
		}
	}
	return out
}

// ByTrackingStatus narrows to the single tracked record when exclusive mode
// is on and a tracked id is set; otherwise it is the identity.
func ByTrackingStatus(records []catalog.SatelliteRecord, trackedID string, exclusive bool) []catalog.SatelliteRecord {
	if !exclusive || trackedID == "" {
		return records
	}
	for _, r := range records {
		if r.ID == trackedID {
			return []catalog.SatelliteRecord{r}
		}
	}
	return nil
}

// ByViewportBounds keeps records whose position falls inside the bounds
// expanded by margin. The latitude margin is half the longitude margin to
// compensate for typical map aspect ratios; boundaries are inclusive.
func ByViewportBounds(records []catalog.SatelliteRecord, bounds ViewportBounds, margin float64) []catalog.SatelliteRecord {
	west := bounds.West - margin
	east := bounds.East + margin
	south := bounds.South - margin/2
	north := bounds.North + margin/2

	out := make([]catalog.SatelliteRecord, 0, len(records))
	for _, r := range records {
		if r.Position.Lng >= west && r.Position.Lng <= east &&
			r.Position.Lat >= south && r.Position.Lat <= north {
			out = append(out, r)
		}
	}
	return out
}

// ForRendering composes the visibility filters with fixed precedence:
// tracking-exclusive mode short-circuits past type and viewport filtering
// entirely; otherwise the type filter runs, then the viewport filter only
// when bounds are supplied.
func ForRendering(records []catalog.SatelliteRecord, enabled map[string]bool, trackedID string, exclusive bool, bounds *ViewportBounds, margin float64) []catalog.SatelliteRecord {
	if exclusive && trackedID != "" {
		return ByTrackingStatus(records, trackedID, true)
	}
	out := ByEnabledTypes(records, enabled)
	if bounds != nil {
		out = ByViewportBounds(out, *bounds, margin)
	}
	return out
}

// BySearchQuery keeps records whose name, shortname, or alternate name
// contains the query, case-insensitively. A blank query is the identity.
func BySearchQuery(records []catalog.SatelliteRecord, q string) []catalog.SatelliteRecord {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return records
	}
	out := make([]catalog.SatelliteRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Shortname), q) ||
			strings.Contains(strings.ToLower(r.AlternateName), q) {
			out = append(out, r)
		}
	}
	return out
}

// ForPerformance enforces the hard cap on how many records a consumer may
// receive. A tracked record present in the input is never dropped: it is
// pulled out, the rest are truncated to max-1 in their existing order, and
// the tracked record is prepended at index 0.
func ForPerformance(records []catalog.SatelliteRecord, max int, trackedID string) []catalog.SatelliteRecord {
	if max <= 0 {
		return nil
	}

	if trackedID != "" {
		var tracked *catalog.SatelliteRecord
		rest := make([]catalog.SatelliteRecord, 0, len(records))
		for _, r := range records {
			if r.ID == trackedID && tracked == nil {
				t := r
				tracked = &t
				continue
			}
			rest = append(rest, r)
		}
		if tracked != nil {
			if len(rest) > max-1 {
				rest = rest[:max-1]
			}
			return append([]catalog.SatelliteRecord{*tracked}, rest...)
		}
		records = rest
	}

	if len(records) > max {
		records = records[:max]
	}
	return records
}
