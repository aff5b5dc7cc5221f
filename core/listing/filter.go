package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rados-compare/core/storage"
)

// ErrMalformedTimestamp marks a cutoff or object timestamp that cannot be used.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ParseCutoff parses an RFC 3339 timestamp with offset, e.g. "2044-11-28T21:00:09+09:00".
func ParseCutoff(value string) (time.Time, error) {
	cutoff, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cutoff %q: %w", ErrMalformedTimestamp, strings.TrimSpace(value), err)
	}
	return cutoff, nil
}

// Filter returns the objects last modified at or before cutoff, in their original order.
// Timestamps are compared as instants, so differing UTC offsets compare correctly.
// An object without a last-modified time aborts the filter: dropping it silently would
// make the reconciliation unsound.
func Filter(objects []storage.Object, cutoff time.Time) ([]storage.Object, error) {
	kept := make([]storage.Object, 0, len(objects))
	for _, obj := range objects {
		if obj.LastModified.IsZero() {
			return nil, fmt.Errorf("%w: object %q has no last-modified time", ErrMalformedTimestamp, obj.Key)
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		kept = append(kept, obj)
	}
	return kept, nil
}

// FilterPage applies Filter to the objects of one page. The continuation token is kept.
func FilterPage(page storage.Page, cutoff time.Time) (storage.Page, error) {
	objects, err := Filter(page.Objects, cutoff)
	if err != nil {
		return storage.Page{}, err
	}
	return storage.Page{Objects: objects, NextToken: page.NextToken}, nil
}
