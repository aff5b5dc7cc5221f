package reconcile

import (
	"rados-compare/core/storage"
)

// Engine computes the symmetric difference of (key, size) pairs between two backends.
//
// Backend A's objects are seeded first, then backend B's objects are applied against them,
// in listing order. Objects can be fed page by page; the outcome does not depend on how
// the listing was split. Memory is proportional to the number of objects seeded from A.
type Engine struct {
	entries  Result
	applying bool
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{entries: make(Result)}
}

// SeedA records objects listed by backend A. It must not be called after ApplyB.
// A key listed twice keeps the later size.
func (e *Engine) SeedA(objects ...storage.Object) {
	if e.applying {
		panic("reconcile: SeedA called after ApplyB")
	}
	for _, obj := range objects {
		e.entries[obj.Key] = OnlyA(obj.Size)
	}
}

// ApplyB matches objects listed by backend B against the seeded set.
// Equal sizes cancel out, differing sizes become a mismatch, unknown keys are B-only.
func (e *Engine) ApplyB(objects ...storage.Object) {
	e.applying = true
	for _, obj := range objects {
		entry, ok := e.entries[obj.Key]
		if !ok {
			// Also reached by a B key listed twice whose first listing cancelled out.
			e.entries[obj.Key] = OnlyB(obj.Size)
			continue
		}

		switch entry.Status {
		case StatusOnlyA:
			if entry.SizeA == obj.Size {
				delete(e.entries, obj.Key)
			} else {
				e.entries[obj.Key] = SizeMismatch(entry.SizeA, obj.Size)
			}
		case StatusOnlyB:
			e.entries[obj.Key] = OnlyB(obj.Size)
		case StatusSizeMismatch:
			if entry.SizeA == obj.Size {
				delete(e.entries, obj.Key)
			} else {
				e.entries[obj.Key] = SizeMismatch(entry.SizeA, obj.Size)
			}
		}
	}
}

// Len returns the number of disagreeing keys so far.
func (e *Engine) Len() int {
	return len(e.entries)
}

// Result returns the disagreeing keys. The engine must not be used afterwards.
func (e *Engine) Result() Result {
	return e.entries
}

// Reconcile compares two complete listings in one call.
func Reconcile(a, b []storage.Object) Result {
	engine := NewEngine()
	engine.SeedA(a...)
	engine.ApplyB(b...)
	return engine.Result()
}
