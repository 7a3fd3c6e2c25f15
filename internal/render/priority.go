package render

import (
	"sort"
	"strings"

	"github.com/marholt/satview/internal/catalog"
)

// Loading priority scores. Higher loads first. The score decides load order
// only; it never hides a record.
const (
	priorityFlagship      = 1000
	priorityMajorScience  = 950
	priorityMajorEarthObs = 900
	priorityNavigation    = 850
	priorityScientific    = 800
	priorityCommunication = 750
	prioritySmallSat      = 700
	priorityConstellation = 650
	priorityDefault       = 600
)

var (
	flagshipKeywords      = []string{"ISS", "ZARYA"}
	majorScienceKeywords  = []string{"HUBBLE", "HST", "JAMES WEBB", "JWST", "CHANDRA"}
	majorEarthObsKeywords = []string{"LANDSAT", "SENTINEL", "TERRA", "AQUA"}
	navigationKeywords    = []string{"GPS", "NAVSTAR", "GLONASS", "GALILEO", "BEIDOU"}
	smallSatKeywords      = []string{"CUBESAT", "CUBE", "DOVE", "LEMUR"}
	constellationKeywords = []string{"STARLINK"}
)

// LoadingPriority computes a record's load-order score from name keywords
// and category, checked in fixed precedence order from most to least
// important.
func LoadingPriority(r catalog.SatelliteRecord) int {
	name := strings.ToUpper(r.Name)

	switch {
	case containsAny(name, flagshipKeywords):
		return priorityFlagship
	case containsAny(name, majorScienceKeywords):
		return priorityMajorScience
	case containsAny(name, majorEarthObsKeywords):
		return priorityMajorEarthObs
	case r.Category == "navigation" || containsAny(name, navigationKeywords):
		return priorityNavigation
	case r.Category == "scientific":
		return priorityScientific
	case r.Category == "communication":
		return priorityCommunication
	case containsAny(name, smallSatKeywords):
		return prioritySmallSat
	case containsAny(name, constellationKeywords):
		return priorityConstellation
	}
	return priorityDefault
}

// ByLoadingPriority returns the records stably sorted by descending score,
// so equal-priority records keep their catalog order.
func ByLoadingPriority(records []catalog.SatelliteRecord) []catalog.SatelliteRecord {
	out := make([]catalog.SatelliteRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return LoadingPriority(out[i]) > LoadingPriority(out[j])
	})
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
