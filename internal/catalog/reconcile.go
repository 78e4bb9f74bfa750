package catalog

import "sort"

// Reconciler applies delta payloads to a Store and reports the status
// transitions that actually happened. Keeping it separate from the Store
// makes it the store's only writer besides ReplaceAll.
type Reconciler struct {
	store *Store
}

// NewReconciler returns a reconciler bound to the given store.
func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store}
}

// ApplyDelta applies a delta payload (code → slot updates) to the store
// and returns one ChangeRecord per real transition.
//
// Comparison is always against the live stored value, never against a
// prior snapshot: re-asserting the current status is a no-op, and a
// sequence of updates for the same slot inside one batch yields a record
// for each transition it actually makes. Codes not yet known from a
// snapshot are skipped entirely. Records are grouped by code, codes in
// sorted order; updates within a code keep arrival order.
func (r *Reconciler) ApplyDelta(delta map[string][]SlotUpdate) []ChangeRecord {
	if len(delta) == 0 {
		return nil
	}

	codes := make([]string, 0, len(delta))
	for code := range delta {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var changes []ChangeRecord
	for _, code := range codes {
		p, ok := r.store.pavilions[code]
		if !ok {
			// The feed may reference pavilions we have no snapshot for
			// yet; the next full refresh will pick them up.
			continue
		}
		for _, update := range delta[code] {
			previous, seen := p.Schedules[update.Slot]
			if !seen {
				previous = StatusNoData
			}
			if previous == update.Status {
				continue
			}
			p.Schedules[update.Slot] = update.Status
			changes = append(changes, ChangeRecord{
				Code:     code,
				Slot:     update.Slot,
				Previous: previous,
				New:      update.Status,
			})
		}
	}
	return changes
}
