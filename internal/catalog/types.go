package catalog

// Status is the availability state of a single time slot.
type Status int

const (
	StatusAvailable   Status = 0
	StatusLimited     Status = 1
	StatusUnavailable Status = 2
	// StatusNoData marks a slot the store has no value for. It is never
	// stored in a schedule map; absence of the key means no data.
	StatusNoData Status = -1
)

// Label returns the human-readable form of a status.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available ✅"
	case StatusLimited:
		return "Limited ⚠️"
	case StatusUnavailable:
		return "Unavailable ⛔️"
	}
	return "Unknown Status ❓"
}

// Color returns the severity color hex code for a status.
func (s Status) Color() string {
	switch s {
	case StatusAvailable:
		return "#A5D6A7"
	case StatusLimited:
		return "#FFD34F"
	case StatusUnavailable:
		return "#E0BBE4"
	}
	return "#B0BEC5"
}

// Pavilion is one catalog entry: an immutable code plus display metadata
// and the per-slot availability schedule.
type Pavilion struct {
	Code      string
	Name      string
	URL       string
	Schedules map[string]Status
}

// SlotUpdate is a single (slot, status) pair from a delta payload.
type SlotUpdate struct {
	Slot   string
	Status Status
}

// ChangeRecord describes one observed status transition. Previous is
// StatusNoData when the slot had no stored value before the update.
type ChangeRecord struct {
	Code     string
	Slot     string
	Previous Status
	New      Status
}

// Summary is a (code, name) pair for listing and search results.
type Summary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
