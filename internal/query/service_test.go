package query

import (
	"errors"
	"testing"

	"github.com/marholt/satview/internal/apperr"
	"github.com/marholt/satview/internal/catalog"
)

func record(id, name, category string) catalog.SatelliteRecord {
	return catalog.SatelliteRecord{ID: id, Name: name, Category: category}
}

func fixtureStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	store.Replace([]catalog.SatelliteRecord{
		record("iss-zarya-25544", "ISS (ZARYA)", "scientific"),
		record("landsat-9", "LANDSAT 9", "earth-observation"),
		record("sentinel-2a", "SENTINEL-2A", "earth-observation"),
		record("intelsat-39", "INTELSAT 39", "communication"),
		record("noaa-20", "NOAA 20", "weather"),
	})
	return store
}

func TestCategories(t *testing.T) {
	svc := NewService(fixtureStore(t))

	cats := svc.Categories()
	if len(cats) != 4 {
		t.Fatalf("got %d categories, want 4", len(cats))
	}

	total := 0
	for _, c := range cats {
		if c.Count == 0 {
			t.Errorf("category %q has zero count", c.ID)
		}
		if c.Description == "" {
			t.Errorf("category %q has no description", c.ID)
		}
		total += c.Count
	}
	if total != 5 {
		t.Errorf("counts sum to %d, want catalog size 5", total)
	}

	// Sorted by display name ascending: Communication, Earth Observation,
	// Scientific, Weather.
	wantOrder := []string{"Communication", "Earth Observation", "Scientific", "Weather"}
	for i, c := range cats {
		if c.DisplayName != wantOrder[i] {
			t.Errorf("cats[%d].DisplayName = %q, want %q", i, c.DisplayName, wantOrder[i])
		}
	}
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	svc := NewService(catalog.NewStore())
	if cats := svc.Categories(); len(cats) != 0 {
		t.Errorf("empty catalog produced %d categories", len(cats))
	}
}

func TestBrowseByCategory(t *testing.T) {
	svc := NewService(fixtureStore(t))

	res := svc.BrowseByCategory("earth-observation", Filters{})
	if res.Category != "earth-observation" {
		t.Errorf("category = %q", res.Category)
	}
	if res.TotalCount != 2 {
		t.Fatalf("totalCount = %d, want 2", res.TotalCount)
	}

	// Unknown category is an empty success.
	res = svc.BrowseByCategory("bogus", Filters{})
	if res.TotalCount != 0 || len(res.Satellites) != 0 {
		t.Errorf("unknown category should be empty, got %d", res.TotalCount)
	}
}

func TestDetail(t *testing.T) {
	svc := NewService(fixtureStore(t))

	if _, err := svc.Detail("does-not-exist"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	rec, err := svc.Detail("noaa-20")
	if err != nil || rec.Name != "NOAA 20" {
		t.Errorf("lookup = %+v, err=%v", rec, err)
	}
}

func TestApplyFiltersNameMatchesAnyField(t *testing.T) {
	records := []catalog.SatelliteRecord{
		{ID: "a-1", Name: "ALPHA", Shortname: "AL"},
		{ID: "b-2", Name: "BETA", Shortname: "findme"},
		{ID: "findme-3", Name: "GAMMA"},
		{ID: "d-4", Name: "Has FINDME inside"},
	}

	got := ApplyFilters(records, Filters{Name: "FiNdMe"})
	if len(got) != 3 {
		t.Fatalf("matched %d records, want 3 (shortname, id, name)", len(got))
	}
}

func TestApplyFiltersTypeExact(t *testing.T) {
	records := []catalog.SatelliteRecord{
		record("a", "A", "weather"),
		record("b", "B", "weather-x"),
	}
	got := ApplyFilters(records, Filters{Type: "weather"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("exact type match failed: %+v", got)
	}
}

func TestApplyFiltersSortByName(t *testing.T) {
	records := []catalog.SatelliteRecord{
		record("c", "Charlie", "x"),
		record("a", "alpha", "x"),
		record("b", "Bravo", "x"),
	}
	got := ApplyFilters(records, Filters{SortBy: SortByName})
	want := []string{"alpha", "Bravo", "Charlie"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestApplyFiltersDescPreservesStability(t *testing.T) {
	// Three records share category "mid"; descending sort by type must keep
	// their relative input order because the comparison is negated, not the
	// slice reversed.
	records := []catalog.SatelliteRecord{
		record("first", "F", "mid"),
		record("low", "L", "aaa"),
		record("second", "S", "mid"),
		record("high", "H", "zzz"),
		record("third", "T", "mid"),
	}

	got := ApplyFilters(records, Filters{SortBy: SortByType, SortOrder: SortDesc})

	if got[0].ID != "high" {
		t.Errorf("got[0] = %q, want high", got[0].ID)
	}
	if got[len(got)-1].ID != "low" {
		t.Errorf("last = %q, want low", got[len(got)-1].ID)
	}
	mids := []string{got[1].ID, got[2].ID, got[3].ID}
	want := []string{"first", "second", "third"}
	for i := range want {
		if mids[i] != want[i] {
			t.Errorf("equal-key order broken: %v, want %v", mids, want)
			break
		}
	}
}

func TestApplyFiltersLaunchDateIsInertTie(t *testing.T) {
	records := []catalog.SatelliteRecord{
		record("z", "Z", "x"),
		record("a", "A", "x"),
		record("m", "M", "x"),
	}
	got := ApplyFilters(records, Filters{SortBy: SortByLaunchDate})
	for i := range records {
		if got[i].ID != records[i].ID {
			t.Errorf("launchDate sort reordered records: %v", got)
			break
		}
	}
}

func TestApplyFiltersZeroFiltersIdentity(t *testing.T) {
	records := []catalog.SatelliteRecord{record("a", "A", "x"), record("b", "B", "y")}
	got := ApplyFilters(records, Filters{})
	if len(got) != 2 {
		t.Errorf("zero filters changed the set: %v", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"earth-observation": "Earth Observation",
		"weather":           "Weather",
		"communication":     "Communication",
	}
	for id, want := range tests {
		if got := DisplayName(id); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestDescribeCategoryFallback(t *testing.T) {
	got := describeCategory("experimental", "Experimental")
	if got != "Satellites in the Experimental category" {
		t.Errorf("fallback description = %q", got)
	}
	if describeCategory("weather", "Weather") == describeCategory("experimental", "Experimental") {
		t.Error("known category should use its mapped description")
	}
}
