// Package reconcile compares the listings of one bucket on two storage backends.
//
// The comparison only looks at object keys and sizes. After both listings have been folded
// into an Engine, a key is part of the Result iff:
//   - it was listed by exactly one backend (StatusOnlyA, StatusOnlyB), or
//   - it was listed by both with different sizes (StatusSizeMismatch, both sizes kept).
//
// Keys listed by both backends with the same size cancel out and never appear.
//
// # Performance
//
// The engine runs in O(|A|+|B|) time and keeps one map entry per object of backend A while
// B is applied. Listings can be fed page by page, so a full listing never needs to be held
// in memory next to the map.
//
// # Known limitations
//
// A key listed twice by the same backend keeps its later size. A key listed twice by
// backend B whose first listing cancelled out is reported as StatusOnlyB.
//
// # Usage Example
//
//	engine := reconcile.NewEngine()
//	engine.SeedA(objectsA...)
//	engine.ApplyB(objectsB...)
//	for _, key := range engine.Result().Keys() { ... }
package reconcile
