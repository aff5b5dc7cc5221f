package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rados-compare/core/listing"
	"rados-compare/core/logger"
	"rados-compare/core/metrics"
	"rados-compare/core/reconcile"
	"rados-compare/core/report"
	"rados-compare/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is one side of the comparison.
type Backend struct {
	// Name identifies the backend in logs and metrics (e.g. "ceph_a").
	Name   string
	Client storage.Client
}

// ReportWriter persists the outcome of a run.
type ReportWriter interface {
	// WriteBucket stores the disagreeing keys of one bucket. Only called for non-empty results.
	WriteBucket(bucket string, result reconcile.Result) error
	// WriteSummary stores the run status and the mismatching buckets, once per run.
	WriteSummary(mismatched []string) error
}

// RunStatus accumulates the per-bucket outcomes of one run.
type RunStatus struct {
	// Buckets is the number of buckets reconciled.
	Buckets int
	// Mismatched lists the buckets with at least one disagreeing key, in processing order.
	Mismatched []string
}

// Record adds the result of one bucket.
func (s *RunStatus) Record(bucket string, result reconcile.Result) {
	s.Buckets++
	if len(result) > 0 {
		s.Mismatched = append(s.Mismatched, bucket)
	}
}

// Flag returns "1" if any bucket mismatched, "0" otherwise.
func (s *RunStatus) Flag() string {
	if len(s.Mismatched) > 0 {
		return report.StatusMismatch
	}
	return report.StatusClean
}

// Driver reconciles a list of buckets between backend A and backend B.
type Driver struct {
	A       Backend
	B       Backend
	Writer  ReportWriter
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Parallel lists both backends of a bucket concurrently. Buckets stay sequential.
	Parallel bool
	// MaxKeys is the page size requested from the backends. Zero selects listing.DefaultMaxKeys.
	MaxKeys int
}

func (d *Driver) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Run processes the buckets in order, skipping blank names. Every mismatching bucket is
// written as soon as it is known; the summary is written after the last bucket.
// The first error aborts the run. Bucket reports written before it stay in place.
func (d *Driver) Run(ctx context.Context, buckets []string, cutoff time.Time) (*RunStatus, error) {
	status := &RunStatus{}

	for _, raw := range buckets {
		bucket := strings.TrimSpace(raw)
		if bucket == "" {
			continue
		}

		result, err := d.ReconcileBucket(ctx, bucket, cutoff)
		if err != nil {
			return status, fmt.Errorf("bucket %s: %w", bucket, err)
		}

		status.Record(bucket, result)
		d.Metrics.ObserveBucket(bucket, result)

		if len(result) == 0 {
			d.logger().Info("Bucket is in sync", zap.String("bucket", bucket))
			continue
		}

		counts := result.Counts()
		d.logger().Warn("Bucket differs between backends",
			zap.String("bucket", bucket),
			zap.Int("objects_different", len(result)),
			zap.Int("only_a", counts[reconcile.StatusOnlyA]),
			zap.Int("only_b", counts[reconcile.StatusOnlyB]),
			zap.Int("size_mismatch", counts[reconcile.StatusSizeMismatch]),
		)

		if err := d.Writer.WriteBucket(bucket, result); err != nil {
			return status, fmt.Errorf("bucket %s: %w", bucket, err)
		}
	}

	if err := d.Writer.WriteSummary(status.Mismatched); err != nil {
		return status, err
	}
	d.Metrics.ObserveRun(len(status.Mismatched), time.Now())

	return status, nil
}

// ReconcileBucket lists one bucket on both backends, keeps the objects modified at or before
// cutoff and returns the disagreeing keys. Backend A is always fully seeded before any object
// of backend B is applied.
func (d *Driver) ReconcileBucket(ctx context.Context, bucket string, cutoff time.Time) (reconcile.Result, error) {
	engine := reconcile.NewEngine()

	if !d.Parallel {
		if err := d.walk(ctx, d.A, bucket, cutoff, engine.SeedA); err != nil {
			return nil, err
		}
		if err := d.walk(ctx, d.B, bucket, cutoff, engine.ApplyB); err != nil {
			return nil, err
		}
		return engine.Result(), nil
	}

	// B's objects wait until A's listing is complete.
	var pendingB []storage.Object
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.walk(gctx, d.A, bucket, cutoff, engine.SeedA)
	})
	g.Go(func() error {
		return d.walk(gctx, d.B, bucket, cutoff, func(objects ...storage.Object) {
			pendingB = append(pendingB, objects...)
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	engine.ApplyB(pendingB...)
	return engine.Result(), nil
}

// walk lists a bucket on one backend and folds every filtered page into fold.
func (d *Driver) walk(ctx context.Context, backend Backend, bucket string, cutoff time.Time, fold func(...storage.Object)) error {
	log := logger.WithBackend(d.logger(), backend.Name, bucket)
	log.Info("Listing objects")

	start := time.Now()
	var listed, kept, pages int

	paginator := listing.NewPaginator(backend.Client, d.MaxKeys)
	paginator.Observer = func(_ string, page *storage.Page) {
		pages++
		d.Metrics.ObservePage(backend.Name, len(page.Objects))
		log.Debug("Received listing page",
			zap.Int("page", pages),
			zap.Int("objects", len(page.Objects)),
			zap.Bool("last", page.NextToken == ""),
		)
	}

	err := paginator.Walk(ctx, bucket, func(page storage.Page) error {
		filtered, err := listing.FilterPage(page, cutoff)
		if err != nil {
			return err
		}
		listed += len(page.Objects)
		kept += len(filtered.Objects)
		fold(filtered.Objects...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", backend.Name, err)
	}

	elapsed := time.Since(start)
	d.Metrics.ObserveListing(backend.Name, listed-kept, elapsed)
	log.Info("Listed objects",
		zap.Int("pages", pages),
		zap.Int("objects", listed),
		zap.Int("after_cutoff", listed-kept),
		zap.Duration("elapsed", elapsed),
	)

	return nil
}
