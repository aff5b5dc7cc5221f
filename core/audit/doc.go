// Package audit drives the reconciliation of a list of buckets between two backends.
//
// For every bucket the Driver lists backend A, then backend B, drops objects modified after
// the cutoff, and folds both listings into a reconcile.Engine. Buckets with disagreeing keys
// are handed to a ReportWriter immediately; the run summary is written once all buckets are
// done. Any failure stops the run: an incomplete audit is never reported as clean.
//
// # Concurrency
//
// Buckets are processed one at a time. With Parallel set, both backends of a bucket are
// listed concurrently; backend B's filtered objects are buffered until backend A's listing
// has been fully seeded, so the result is identical to a sequential run.
//
// # Usage
//
//	driver := &audit.Driver{
//	    A:      audit.Backend{Name: "ceph_a", Client: clientA},
//	    B:      audit.Backend{Name: "ceph_b", Client: clientB},
//	    Writer: report.NewWriter(cfg.OutputDir, cfg.Report),
//	    Logger: log,
//	}
//	status, err := driver.Run(ctx, buckets, cutoff)
package audit
