// Package testutil provides shared test helpers for building catalog fixtures.
package testutil

import (
	"testing"

	"github.com/marholt/satview/internal/catalog"
)

// Record builds a minimal satellite record for tests.
func Record(id, name, category string) catalog.SatelliteRecord {
	return catalog.SatelliteRecord{
		ID:       id,
		Name:     name,
		Category: category,
	}
}

// RecordAt builds a record with a position, for viewport tests.
func RecordAt(id, name, category string, lat, lng float64) catalog.SatelliteRecord {
	r := Record(id, name, category)
	r.Position = catalog.Position{Lat: lat, Lng: lng}
	return r
}

// TestStore creates a store preloaded with the given records.
func TestStore(t *testing.T, records ...catalog.SatelliteRecord) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	store.Replace(records)
	return store
}

// FixtureRecords is a small mixed-category catalog used across packages.
func FixtureRecords() []catalog.SatelliteRecord {
	return []catalog.SatelliteRecord{
		Record("iss-zarya-25544", "ISS (ZARYA)", "scientific"),
		Record("landsat-9", "LANDSAT 9", "earth-observation"),
		Record("sentinel-2a", "SENTINEL-2A", "earth-observation"),
		Record("intelsat-39", "INTELSAT 39", "communication"),
		Record("gps-iif-12", "GPS BIIF-12 (NAVSTAR 77)", "navigation"),
		Record("noaa-20", "NOAA 20", "weather"),
		Record("starlink-3051", "STARLINK-3051", "communication"),
	}
}
