package catalog

import (
	"strings"
	"sync"
)

// Store is the catalog provider: it holds the current set of records and
// notifies subscribers when the set is replaced. Readers take an RLock and
// receive copies, so query code never observes a half-applied update.
type Store struct {
	mu      sync.RWMutex
	records []SatelliteRecord
	byID    map[string]SatelliteRecord
	loaded  bool

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates an empty, not-yet-loaded store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]SatelliteRecord),
		subs: make(map[int]func()),
	}
}

// Replace swaps in a new catalog snapshot and notifies subscribers.
// Records keep their given order; later duplicates of an id win the lookup map.
func (s *Store) Replace(records []SatelliteRecord) {
	byID := make(map[string]SatelliteRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	s.mu.Lock()
	s.records = records
	s.byID = byID
	s.loaded = true
	s.mu.Unlock()

	s.notify()
}

// All returns a copy of the current records in catalog order.
func (s *Store) All() []SatelliteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SatelliteRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ByID looks up a single record. Absence is a normal outcome.
func (s *Store) ByID(id string) (SatelliteRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// SearchByName returns records whose name, shortname, or alternate name
// contains text, case-insensitively. Blank text matches nothing.
func (s *Store) SearchByName(text string) []SatelliteRecord {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SatelliteRecord
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Name), text) ||
			strings.Contains(strings.ToLower(r.Shortname), text) ||
			strings.Contains(strings.ToLower(r.AlternateName), text) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether the store has received at least one snapshot.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe registers fn to run after every catalog replacement and returns
// an unsubscribe function. Callbacks run synchronously on the replacing
// goroutine and must not block.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
