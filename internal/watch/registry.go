package watch

import (
	"log"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pavilion-status-backend/internal/model"
)

// Registry is the persisted subscription state: the set of watched
// pavilion codes plus each subscriber's ticket IDs. All reads are served
// from memory; every mutation is written through to the database in the
// same call. A nil or failed database degrades to a memory-only registry
// so a broken store never takes the process down, at the cost of
// durability across restarts.
type Registry struct {
	mu        sync.RWMutex
	watched   map[string]struct{}
	ticketIDs map[string][]string
	db        *gorm.DB
}

// NewRegistry builds a registry loaded from db. Pass a nil db for a
// memory-only registry.
func NewRegistry(db *gorm.DB) *Registry {
	r := &Registry{
		watched:   make(map[string]struct{}),
		ticketIDs: make(map[string][]string),
		db:        db,
	}
	r.load()
	return r
}

// load populates the in-memory state from the database. Failures are
// logged and leave the registry empty but functional.
func (r *Registry) load() {
	if r.db == nil {
		log.Println("watch registry running without persistence")
		return
	}

	var watched []model.WatchedPavilion
	if err := r.db.Find(&watched).Error; err != nil {
		log.Printf("Error loading watched pavilions, starting empty: %v", err)
	} else {
		for _, w := range watched {
			r.watched[w.Code] = struct{}{}
		}
		log.Printf("Loaded %d watched pavilions", len(r.watched))
	}

	var profiles []model.TicketProfile
	if err := r.db.Find(&profiles).Error; err != nil {
		log.Printf("Error loading ticket profiles, starting empty: %v", err)
	} else {
		for _, p := range profiles {
			ids := splitIDs(p.TicketIDs)
			if len(ids) > 0 {
				r.ticketIDs[p.SubscriberID] = ids
			}
		}
	}
}

// Add puts a code on the watch list. It returns true if the code was
// newly added, false if it was already watched.
func (r *Registry) Add(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.watched[code]; ok {
		return false
	}
	r.watched[code] = struct{}{}

	if r.db != nil {
		record := model.WatchedPavilion{Code: code}
		if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
			log.Printf("Error persisting watch for %s: %v", code, err)
		}
	}
	return true
}

// Remove takes a code off the watch list. It returns true if the code was
// watched, false otherwise.
func (r *Registry) Remove(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.watched[code]; !ok {
		return false
	}
	delete(r.watched, code)

	if r.db != nil {
		if err := r.db.Delete(&model.WatchedPavilion{Code: code}).Error; err != nil {
			log.Printf("Error removing watch for %s: %v", code, err)
		}
	}
	return true
}

// List returns the watched codes, sorted for stable output.
func (r *Registry) List() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.watched))
	for code := range r.watched {
		out = append(out, code)
	}
	r.mu.RUnlock()

	sort.Strings(out)
	return out
}

// IsWatched reports whether a code is on the watch list.
func (r *Registry) IsWatched(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.watched[code]
	return ok
}

// WatchedSet returns the watch list as a set for change filtering.
func (r *Registry) WatchedSet() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.watched))
	for code := range r.watched {
		out[code] = struct{}{}
	}
	return out
}

// SetTicketIDs replaces the subscriber's ticket IDs. Entries are trimmed
// and empties dropped; an empty result clears the subscriber's IDs.
func (r *Registry) SetTicketIDs(subscriberID string, ids []string) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(cleaned) == 0 {
		delete(r.ticketIDs, subscriberID)
	} else {
		r.ticketIDs[subscriberID] = cleaned
	}

	if r.db == nil {
		return
	}
	if len(cleaned) == 0 {
		if err := r.db.Delete(&model.TicketProfile{SubscriberID: subscriberID}).Error; err != nil {
			log.Printf("Error clearing ticket IDs for %s: %v", subscriberID, err)
		}
		return
	}
	profile := model.TicketProfile{
		SubscriberID: subscriberID,
		TicketIDs:    strings.Join(cleaned, ","),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ticket_ids", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("Error persisting ticket IDs for %s: %v", subscriberID, err)
	}
}

// TicketIDs returns the subscriber's ticket IDs, empty for unknown
// subscribers. The returned slice is a copy.
func (r *Registry) TicketIDs(subscriberID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.ticketIDs[subscriberID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func splitIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
