package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Store holds the latest known status of every pavilion. It is the single
// source of truth for current availability; the Reconciler is its only
// writer. A full snapshot replaces the whole content, so state lives only
// for the lifetime of the process.
type Store struct {
	mu        sync.RWMutex
	pavilions map[string]*Pavilion
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pavilions: make(map[string]*Pavilion)}
}

// ReplaceAll atomically replaces the entire store content with the given
// snapshot. Codes absent from the snapshot are dropped. No change records
// are produced here: a full refresh acquires consistency, it is not a
// change feed.
func (s *Store) ReplaceAll(pavilions []Pavilion) {
	next := make(map[string]*Pavilion, len(pavilions))
	for i := range pavilions {
		p := pavilions[i]
		if p.Code == "" {
			continue
		}
		if p.Schedules == nil {
			p.Schedules = make(map[string]Status)
		}
		next[p.Code] = &p
	}

	s.mu.Lock()
	s.pavilions = next
	s.mu.Unlock()
}

// Get returns a copy of the pavilion for the given code, or false if the
// code is unknown.
func (s *Store) Get(code string) (Pavilion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pavilions[code]
	if !ok {
		return Pavilion{}, false
	}
	out := *p
	out.Schedules = copySchedules(p.Schedules)
	return out, true
}

// Name returns the display name for a code. Unknown codes fall back to the
// code itself; callers use name == code to detect unknown codes.
func (s *Store) Name(code string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.pavilions[code]; ok {
		return p.Name
	}
	return code
}

// URL returns the display URL for a code, or "" if unknown.
func (s *Store) URL(code string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.pavilions[code]; ok {
		return p.URL
	}
	return ""
}

// Slots returns a copy of the slot→status schedule for a code. Unknown
// codes yield an empty map.
func (s *Store) Slots(code string) map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.pavilions[code]; ok {
		return copySchedules(p.Schedules)
	}
	return make(map[string]Status)
}

// ListAll returns every known (code, name) pair. Order is unspecified;
// callers sort for display.
func (s *Store) ListAll() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.pavilions))
	for code, p := range s.pavilions {
		out = append(out, Summary{Code: code, Name: p.Name})
	}
	return out
}

// SearchByName returns pavilions whose name contains the query,
// case-insensitive, sorted by name. An empty query returns no results.
func (s *Store) SearchByName(query string) []Summary {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	out := make([]Summary, 0)
	for code, p := range s.pavilions {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, Summary{Code: code, Name: p.Name})
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of known pavilions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pavilions)
}

func copySchedules(in map[string]Status) map[string]Status {
	out := make(map[string]Status, len(in))
	for slot, status := range in {
		out[slot] = status
	}
	return out
}
