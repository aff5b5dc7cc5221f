package cmd

import (
	"context"
	"errors"
	"fmt"

	"rados-compare/core/audit"
	"rados-compare/core/config"
	"rados-compare/core/listing"
	"rados-compare/core/logger"
	"rados-compare/core/metrics"
	"rados-compare/core/report"
	"rados-compare/core/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrInvocation marks a malformed command line or unreadable input file.
var ErrInvocation = errors.New("invalid invocation")

var (
	// Flags for compare command
	parallelListing bool
	maxKeys         int
)

// compareCmd reconciles a list of buckets between the two configured clusters.
var compareCmd = &cobra.Command{
	Use:   "compare <bucket list file> <cutoff file>",
	Short: "Compare buckets between two clusters",
	Long: `Lists every bucket of the bucket list file on both clusters (CEPH_A_*, CEPH_B_*),
ignores objects modified after the RFC 3339 timestamp stored in the cutoff file, and reports
objects whose presence or size differs.

Results are written to PATH_TO_FILE_OUTPUT_DIR:
  rados_copy_details_<bucket>  disagreeing objects of one bucket
  rados_copy_details           mismatching buckets, appended on every run
  rados_copy_status            1 once any mismatch was found, 0 otherwise`,
	Example: `  rados-compare compare /app/bucket_list/bucket_list_1.txt /app/datetime/datetime.txt

  # List both clusters concurrently
  rados-compare compare --parallel buckets.txt datetime.txt`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: expected <bucket list file> <cutoff file>, got %d argument(s)", ErrInvocation, len(args))
		}
		return nil
	},
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&parallelListing, "parallel", false, "List both clusters of a bucket concurrently")
	compareCmd.Flags().IntVar(&maxKeys, "max-keys", listing.DefaultMaxKeys, "Objects requested per listing page")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	l = logger.WithRunID(l, uuid.NewString())

	buckets, err := audit.ReadBucketList(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvocation, err)
	}

	cutoff, err := audit.ReadCutoff(args[1])
	if err != nil {
		if errors.Is(err, listing.ErrMalformedTimestamp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvocation, err)
	}

	// Connect to both clusters
	clientA, err := storage.NewClient(cfg.BackendA)
	if err != nil {
		return fmt.Errorf("%w: ceph_a: %w", config.ErrConfiguration, err)
	}
	clientB, err := storage.NewClient(cfg.BackendB)
	if err != nil {
		return fmt.Errorf("%w: ceph_b: %w", config.ErrConfiguration, err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	driver := &audit.Driver{
		A:        audit.Backend{Name: "ceph_a", Client: clientA},
		B:        audit.Backend{Name: "ceph_b", Client: clientB},
		Writer:   report.NewWriter(cfg.OutputDir, cfg.Report),
		Logger:   l,
		Metrics:  m,
		Parallel: parallelListing,
		MaxKeys:  maxKeys,
	}

	l.Info("Starting reconciliation",
		zap.Int("buckets", len(buckets)),
		zap.Time("cutoff", cutoff),
		zap.Bool("parallel", parallelListing),
		zap.String("output_dir", cfg.OutputDir),
	)

	status, err := driver.Run(ctx, buckets, cutoff)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		if err := m.WriteTextfile(cfg.MetricsPath()); err != nil {
			return fmt.Errorf("%w: %w", report.ErrPersistence, err)
		}
	}

	l.Info("Reconciliation finished",
		zap.String("status", status.Flag()),
		zap.Int("buckets", status.Buckets),
		zap.Strings("mismatched", status.Mismatched),
	)

	return nil
}
