package cmd

import (
	"fmt"
	"os"

	"asset-janitor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-janitor",
	Short: "Unused asset cleanup for Contentstack stacks",
	Long: `Asset Janitor finds assets that no entry references and folders that hold nothing,
writes them to a CSV report, and deletes what a report lists.

Scan an export or the live stack first, review the report, then run delete.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps for a CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
