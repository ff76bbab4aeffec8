package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"asset-janitor/core/config"
	"asset-janitor/feature/cleanup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunDelete bool

// deleteCmd deletes what a scan report lists.
var deleteCmd = &cobra.Command{
	Use:   "delete <csvFile> <apiKey>",
	Short: "Delete the assets and empty folders listed in a report",
	Long: `Deletes every asset of a scan report, then re-checks each folder the report names
and deletes it only when the API confirms it is empty. Failed deletes are logged
and do not stop the batch; there is no retry.

Examples:
  # Show what would be deleted
  delete ./remote-unused-assets.csv blt0123456789abcdef --dry-run

  delete ./remote-unused-assets.csv blt0123456789abcdef
  delete s3://reports/unused.csv blt0123456789abcdef`,
	Args: requireArgs("csvFile", "apiKey"),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&dryRunDelete, "dry-run", false, "Probe folders without deleting anything")
	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	csvFile := args[0]
	s, err := newSession(ctx, "delete", args[1], func(*config.Config) string { return csvFile })
	if err != nil {
		return err
	}
	defer s.Close()

	svc := cleanup.NewService(s.client, s.reports, s.logger, s.metrics, s.cfg.Scan.Concurrency)
	res, err := svc.Run(ctx, csvFile, dryRunDelete)
	if err != nil {
		return err
	}

	if dryRunDelete {
		s.logger.Info("Dry-run mode: No changes were made.",
			zap.Int("assets_planned", res.Summary.AssetsPlanned),
			zap.Int("folders_planned", res.Summary.FoldersPlanned),
			zap.Int("folders_skipped", res.Summary.FoldersSkipped),
		)
		if res.Summary.AssetsPlanned > 0 && res.Summary.FoldersSkipped > 0 {
			s.logger.Info("Skipped folders may still hold planned assets; a real run can delete more folders than planned")
		}
	}
	return nil
}
