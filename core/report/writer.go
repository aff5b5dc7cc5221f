package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"rados-compare/core/reconcile"
)

// ErrPersistence marks a report file that could not be written or read.
var ErrPersistence = errors.New("report persistence failed")

const (
	// StatusClean is written when no mismatch has ever been recorded.
	StatusClean = "0"
	// StatusMismatch is written as soon as any bucket mismatched.
	StatusMismatch = "1"
)

// Writer persists reconciliation results as flat files in one output directory.
type Writer struct {
	dir string
	cfg Config
}

// NewWriter creates a writer for the given output directory.
func NewWriter(dir string, cfg Config) *Writer {
	if cfg.Format == "" {
		cfg.Format = FormatDetailed
	}
	return &Writer{dir: dir, cfg: cfg}
}

// BucketPath returns the path of the per-bucket report.
func (w *Writer) BucketPath(bucket string) string {
	return filepath.Join(w.dir, w.cfg.DetailsPrefix+bucket)
}

// DetailsPath returns the path of the aggregate mismatch list.
func (w *Writer) DetailsPath() string {
	return filepath.Join(w.dir, w.cfg.DetailsFile)
}

// StatusPath returns the path of the run status file.
func (w *Writer) StatusPath() string {
	return filepath.Join(w.dir, w.cfg.StatusFile)
}

// WriteBucket replaces the report of one bucket with the given result.
func (w *Writer) WriteBucket(bucket string, result reconcile.Result) error {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return fmt.Errorf("%w: invalid bucket name %q", ErrPersistence, bucket)
	}

	var payload any = result
	if w.cfg.Format == FormatSizes {
		payload = result.Sizes()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode report for %s: %w", ErrPersistence, bucket, err)
	}

	if err := os.WriteFile(w.BucketPath(bucket), data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// WriteSummary records the outcome of a run: the status file first, then the mismatching
// buckets appended to the aggregate list.
func (w *Writer) WriteSummary(mismatched []string) error {
	status := StatusClean
	if len(mismatched) > 0 {
		status = StatusMismatch
	}

	if err := w.WriteStatus(status); err != nil {
		return err
	}
	return w.AppendDetails(mismatched)
}

// WriteStatus stores the run status. A mismatch always overwrites the file; a clean status
// is only written when no status file exists yet, so an earlier mismatch is never cleared.
func (w *Writer) WriteStatus(status string) error {
	switch status {
	case StatusMismatch:
	case StatusClean:
		_, err := os.Stat(w.StatusPath())
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	default:
		return fmt.Errorf("%w: invalid status %q", ErrPersistence, status)
	}

	if err := os.WriteFile(w.StatusPath(), []byte(status), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// ResetStatus clears a recorded mismatch.
func (w *Writer) ResetStatus() error {
	if err := os.WriteFile(w.StatusPath(), []byte(StatusClean), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// ReadStatus returns the stored status, or StatusClean if none was written yet.
func (w *Writer) ReadStatus() (string, error) {
	data, err := os.ReadFile(w.StatusPath())
	if errors.Is(err, fs.ErrNotExist) {
		return StatusClean, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// AppendDetails appends one line per bucket to the aggregate list, creating it if needed.
func (w *Writer) AppendDetails(buckets []string) error {
	f, err := os.OpenFile(w.DetailsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	var sb strings.Builder
	for _, bucket := range buckets {
		sb.WriteString(bucket)
		sb.WriteByte('\n')
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
