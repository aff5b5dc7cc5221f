package cmd

import (
	"fmt"

	"rados-compare/core/config"
	"rados-compare/core/report"

	"github.com/spf13/cobra"
)

// statusCmd prints the status recorded in the output directory.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the recorded run status (0 or 1)",
	Long: `Prints the content of the status file. The status stays at 1 after any run that found
a mismatch, until it is cleared with "status reset".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := statusWriter()
		if err != nil {
			return err
		}

		status, err := w.ReadStatus()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

// statusResetCmd clears a recorded mismatch.
var statusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the recorded run status to 0",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := statusWriter()
		if err != nil {
			return err
		}
		return w.ResetStatus()
	},
}

func init() {
	statusCmd.AddCommand(statusResetCmd)
	RootCmd.AddCommand(statusCmd)
}

func statusWriter() (*report.Writer, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateOutputDir(); err != nil {
		return nil, err
	}
	return report.NewWriter(cfg.OutputDir, cfg.Report), nil
}
