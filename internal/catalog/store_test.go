package catalog

import (
	"testing"
)

func testRecords() []SatelliteRecord {
	return []SatelliteRecord{
		{ID: "iss-zarya-25544", Name: "ISS (ZARYA)", Shortname: "ISS", Category: "scientific"},
		{ID: "landsat-9", Name: "LANDSAT 9", Category: "earth-observation"},
		{ID: "noaa-20", Name: "NOAA 20", AlternateName: "JPSS-1", Category: "weather"},
	}
}

func TestStoreReplaceAndAll(t *testing.T) {
	s := NewStore()
	if s.Loaded() {
		t.Error("fresh store reports loaded")
	}
	if s.Len() != 0 {
		t.Errorf("fresh store len = %d", s.Len())
	}

	s.Replace(testRecords())
	if !s.Loaded() {
		t.Error("store not loaded after Replace")
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}

	all := s.All()
	// Catalog order is preserved.
	if all[0].ID != "iss-zarya-25544" || all[2].ID != "noaa-20" {
		t.Errorf("order not preserved: %q, %q", all[0].ID, all[2].ID)
	}

	// Mutating the returned slice must not affect the store.
	all[0].ID = "mutated"
	if got, _ := s.ByID("iss-zarya-25544"); got.ID != "iss-zarya-25544" {
		t.Error("All() leaked internal state")
	}
}

func TestStoreByID(t *testing.T) {
	s := NewStore()
	s.Replace(testRecords())

	rec, ok := s.ByID("landsat-9")
	if !ok || rec.Name != "LANDSAT 9" {
		t.Errorf("ByID = %+v, ok=%v", rec, ok)
	}
	if _, ok := s.ByID("missing"); ok {
		t.Error("missing id reported ok")
	}
}

func TestStoreSearchByName(t *testing.T) {
	s := NewStore()
	s.Replace(testRecords())

	if got := s.SearchByName("zarya"); len(got) != 1 || got[0].ID != "iss-zarya-25544" {
		t.Errorf("name search = %+v", got)
	}
	if got := s.SearchByName("jpss"); len(got) != 1 || got[0].ID != "noaa-20" {
		t.Errorf("alternate-name search = %+v", got)
	}
	if got := s.SearchByName("  "); got != nil {
		t.Errorf("blank search = %+v, want nil", got)
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()

	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Replace(testRecords())
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unsubscribe()
	s.Replace(nil)
	if calls != 1 {
		t.Errorf("callback ran after unsubscribe: %d", calls)
	}
}

func TestStoreReplaceEmptyStillLoaded(t *testing.T) {
	s := NewStore()
	s.Replace(nil)
	if !s.Loaded() {
		t.Error("empty snapshot must still count as loaded")
	}
}
