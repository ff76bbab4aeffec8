package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asset-janitor/core/config"
	"asset-janitor/core/contentstack"
	"asset-janitor/core/logger"
	"asset-janitor/core/report"
	"asset-janitor/core/storage"
	"asset-janitor/core/telemetry/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session holds everything one command run needs.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  contentstack.Client
	reports *report.Store
	metrics metrics.Recorder
}

// newSession loads configuration and connects the clients of a run.
// location picks the report location so object storage is only set up when it is used.
func newSession(ctx context.Context, command, apiKey string, location func(*config.Config) string) (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID()).With(zap.String("command", command))

	client, err := contentstack.NewClient(cfg.Contentstack, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create contentstack client: %w", err)
	}

	var objects storage.Client
	if loc := location(cfg); report.IsRemote(loc) {
		objects, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	rec, err := metrics.New(ctx, cfg.Metrics)
	if err != nil {
		// Metrics are optional; the run continues without them
		l.Warn("Failed to initialize metrics", zap.Error(err))
		rec = metrics.NewNoop()
	}

	l.Info("Starting run",
		zap.String("host", cfg.Contentstack.Host),
		zap.String("branch", cfg.Contentstack.Branch),
	)

	return &session{
		cfg:     cfg,
		logger:  l,
		client:  client,
		reports: report.NewStore(objects),
		metrics: rec,
	}, nil
}

// Close flushes metrics and logs.
func (s *session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.metrics.Shutdown(ctx); err != nil {
		s.logger.Warn("Failed to flush metrics", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// requireArgs prints usage and fails when the positional arguments do not match names.
func requireArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			_ = cmd.Usage()
			return fmt.Errorf("missing required arguments: %s", strings.Join(names[len(args):], ", "))
		}
		if len(args) > len(names) {
			_ = cmd.Usage()
			return fmt.Errorf("expected %d arguments, got %d", len(names), len(args))
		}
		return nil
	}
}
