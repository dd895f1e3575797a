package monitor

// History is the bounded, most-recent-first record store. Capacity is
// fixed at construction; appending past it silently evicts the oldest
// entries. History itself is not synchronized: the Monitor serializes
// all access.
type History struct {
	capacity int
	records  []ActivityRecord
}

// DefaultCapacity bounds the rolling history when no override is given.
const DefaultCapacity = 100

// NewHistory creates an empty store holding at most capacity records.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		capacity: capacity,
		records:  make([]ActivityRecord, 0, capacity),
	}
}

// Append inserts the record at the front, evicting the oldest entry
// once the store is full.
func (h *History) Append(rec ActivityRecord) {
	if len(h.records) < h.capacity {
		h.records = append(h.records, ActivityRecord{})
	}
	copy(h.records[1:], h.records)
	h.records[0] = rec
}

// Clear empties the store.
func (h *History) Clear() {
	h.records = h.records[:0]
}

// Len returns the number of retained records.
func (h *History) Len() int {
	return len(h.records)
}

// Capacity returns the fixed store capacity.
func (h *History) Capacity() int {
	return h.capacity
}

// Snapshot returns a copy of the retained records, most recent first.
// Callers may hold it indefinitely; later appends do not mutate it.
func (h *History) Snapshot() []ActivityRecord {
	out := make([]ActivityRecord, len(h.records))
	copy(out, h.records)
	return out
}
