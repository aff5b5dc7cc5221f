package audit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"rados-compare/core/listing"
)

// ReadBucketList reads a newline separated list of bucket names.
// Names are trimmed and blank lines dropped.
func ReadBucketList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bucket list: %w", err)
	}

	var buckets []string
	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			buckets = append(buckets, name)
		}
	}
	return buckets, nil
}

// ReadCutoff reads and parses the RFC 3339 cutoff timestamp stored in path.
func ReadCutoff(path string) (time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read cutoff: %w", err)
	}
	return listing.ParseCutoff(string(data))
}
