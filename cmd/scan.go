package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"asset-janitor/core/config"
	"asset-janitor/core/reconcile"
	"asset-janitor/feature/scan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanLocalCmd checks the assets of a local export against the live references.
var scanLocalCmd = &cobra.Command{
	Use:   "scan-local <localFolder> <apiKey>",
	Short: "Find unused assets in a local export",
	Long: `Reads metadata.json (and folders.json when present) from a local export folder,
checks every asset for references through the API and writes unused assets and
empty folders to OUTPUT_FILE.

Examples:
  scan-local ./export/assets blt0123456789abcdef`,
	Args: requireArgs("localFolder", "apiKey"),
	RunE: runScanLocal,
}

// scanRemoteCmd checks every asset of the live stack.
var scanRemoteCmd = &cobra.Command{
	Use:   "scan-remote <apiKey>",
	Short: "Find unused assets in the live stack",
	Long: `Lists every asset of the stack, checks each one for references and writes unused
assets and empty folders to OUTPUT_PATH.

Examples:
  scan-remote blt0123456789abcdef

  # Skip the folder check
  ENABLE_EMPTY_FOLDER_CHECK=false scan-remote blt0123456789abcdef`,
	Args: requireArgs("apiKey"),
	RunE: runScanRemote,
}

func init() {
	RootCmd.AddCommand(scanLocalCmd)
	RootCmd.AddCommand(scanRemoteCmd)
}

func runScanLocal(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, "scan-local", args[1], func(c *config.Config) string { return c.Scan.OutputFile })
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("Scanning local export", zap.String("folder", args[0]))
	svc := scan.NewService(s.client, s.reports, s.logger, s.metrics, s.cfg.Scan)
	res, err := svc.ScanLocal(ctx, args[0])
	return reportScan(s.logger, res, err)
}

func runScanRemote(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, "scan-remote", args[0], func(c *config.Config) string { return c.Scan.OutputPath })
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("Scanning remote assets")
	svc := scan.NewService(s.client, s.reports, s.logger, s.metrics, s.cfg.Scan)
	res, err := svc.ScanRemote(ctx)
	return reportScan(s.logger, res, err)
}

// reportScan logs the outcome of a scan. Finding nothing is not a failure.
func reportScan(l *zap.Logger, res *scan.Result, err error) error {
	if errors.Is(err, reconcile.ErrNothingFound) {
		l.Info("No unused assets or empty folders found", zap.Int("assets_checked", res.Assets))
		return nil
	}
	if err != nil {
		return err
	}

	l.Info("Scan report written",
		zap.String("output", res.Output),
		zap.Int("assets_checked", res.Assets),
		zap.Int("unused_assets", len(res.Unused)),
		zap.Int("empty_folders", len(res.EmptyFolders)),
		zap.Int("failed_checks", res.FailedChecks),
	)
	return nil
}
