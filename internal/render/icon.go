package render

import (
	"math/rand"
	"strings"

	"github.com/marholt/satview/internal/catalog"
)

// Zoom bands for the icon-vs-marker decision. At or above zoomAlways every
// eligible record gets an icon; between the bands icon density is thinned
// probabilistically; below zoomFloor icons are never drawn. These are
// visual-density tunables, not correctness rules.
const (
	zoomAlways = 4.0
	zoomMedium = 3.0
	zoomFloor  = 2.0

	mediumZoomIconChance = 0.6
	lowZoomIconChance    = 0.3
)

// ShouldRenderAsIcon decides whether a record is drawn as a full icon
// instead of a plain marker. The probabilistic thinning at medium and low
// zoom draws from the caller-supplied generator, making the randomness
// source explicit: callers that want frame-stable decisions pass a
// deterministically seeded rng, callers that want pattern-free density pass
// a shared one.
func ShouldRenderAsIcon(r catalog.SatelliteRecord, loadedIcons map[string]bool, zoom float64, trackedID string, rng *rand.Rand) bool {
	if r.Image == "" || !loadedIcons[r.Image] {
		return false
	}
	if trackedID != "" && r.ID == trackedID {
		return true
	}
	if containsAny(strings.ToUpper(r.Name), flagshipKeywords) {
		return true
	}

	switch {
	case zoom >= zoomAlways:
		return true
	case zoom >= zoomMedium:
		return rng.Float64() < mediumZoomIconChance
	case zoom >= zoomFloor:
		return rng.Float64() < lowZoomIconChance
	}
	return false
}
