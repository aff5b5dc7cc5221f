package reconcile

import (
	"encoding/json"
	"sort"
)

// Status tells on which side of a comparison an object disagrees.
type Status string

const (
	// StatusOnlyA marks an object listed by backend A only.
	StatusOnlyA Status = "only_a"
	// StatusOnlyB marks an object listed by backend B only.
	StatusOnlyB Status = "only_b"
	// StatusSizeMismatch marks an object listed by both backends with different sizes.
	StatusSizeMismatch Status = "size_mismatch"
)

// Entry is the reconciliation outcome for a single object key.
// SizeA is meaningful for StatusOnlyA and StatusSizeMismatch, SizeB for StatusOnlyB and
// StatusSizeMismatch.
type Entry struct {
	Status Status
	SizeA  uint64
	SizeB  uint64
}

// OnlyA returns an entry for an object present on backend A only.
func OnlyA(size uint64) Entry {
	return Entry{Status: StatusOnlyA, SizeA: size}
}

// OnlyB returns an entry for an object present on backend B only.
func OnlyB(size uint64) Entry {
	return Entry{Status: StatusOnlyB, SizeB: size}
}

// SizeMismatch returns an entry for an object whose size differs between backends.
func SizeMismatch(sizeA, sizeB uint64) Entry {
	return Entry{Status: StatusSizeMismatch, SizeA: sizeA, SizeB: sizeB}
}

// Size returns the most recent size known for the entry: B's size whenever B listed the
// object, A's otherwise.
func (e Entry) Size() uint64 {
	if e.Status == StatusOnlyA {
		return e.SizeA
	}
	return e.SizeB
}

// MarshalJSON writes only the sizes that apply to the entry's status, so a zero-byte object
// stays distinguishable from an absent one.
func (e Entry) MarshalJSON() ([]byte, error) {
	type wire struct {
		Status Status  `json:"status"`
		SizeA  *uint64 `json:"size_a,omitempty"`
		SizeB  *uint64 `json:"size_b,omitempty"`
	}

	w := wire{Status: e.Status}
	switch e.Status {
	case StatusOnlyA:
		w.SizeA = &e.SizeA
	case StatusOnlyB:
		w.SizeB = &e.SizeB
	default:
		w.SizeA = &e.SizeA
		w.SizeB = &e.SizeB
	}
	return json.Marshal(w)
}

// Result maps every disagreeing object key to its outcome.
// Keys present on both backends with equal size never appear.
type Result map[string]Entry

// Len returns the number of disagreeing keys.
func (r Result) Len() int {
	return len(r)
}

// Keys returns the keys of the result in ascending order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Counts returns the number of entries per status.
func (r Result) Counts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, entry := range r {
		counts[entry.Status]++
	}
	return counts
}

// Sizes flattens the result into a key to size mapping for the "sizes" report format.
// Mismatches keep backend B's size.
func (r Result) Sizes() map[string]uint64 {
	sizes := make(map[string]uint64, len(r))
	for key, entry := range r {
		sizes[key] = entry.Size()
	}
	return sizes
}
