package feed

// snapshotEntry models one pavilion record in the snapshot payload. The
// upstream uses single-letter keys. Pointer fields distinguish a missing
// key from a zero value so malformed entries can be rejected one by one.
type snapshotEntry struct {
	Code      *string     `json:"c"`
	Name      string      `json:"n"`
	URL       string      `json:"u"`
	Schedules []slotEntry `json:"s"`
}

// slotEntry is one (slot, status) pair in either payload.
type slotEntry struct {
	Slot   *string `json:"t"`
	Status *int    `json:"s"`
}
