// Package listing walks paginated bucket listings and bounds them by modification time.
//
// A Paginator drives storage.Client.ListPage with continuation tokens until a backend
// reports the final page. Pages are handed to a callback one at a time so callers can fold
// them into their own structures without holding the raw listing in memory.
//
// Filter drops objects modified after a cutoff. Objects still being written while an audit
// runs may legitimately differ between replicas; the cutoff restricts the comparison to a
// point in time at which both backends are expected to have settled.
//
// Errors are classified with ErrTransport (any failed or inconsistent page request) and
// ErrMalformedTimestamp (unparsable cutoff, object without timestamp). Both are fatal.
package listing
