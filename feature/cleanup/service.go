package cleanup

import (
	"context"
	"fmt"

	"asset-janitor/core/contentstack"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/report"
	"asset-janitor/core/telemetry/metrics"

	"go.uber.org/zap"
)

// Service deletes the assets and empty folders listed in a scan report.
type Service struct {
	client  contentstack.Client
	reports *report.Store
	logger  *zap.Logger
	metrics metrics.Recorder
	width   int
}

// NewService creates a new cleanup service. width bounds the folder re-checks.
func NewService(client contentstack.Client, reports *report.Store, logger *zap.Logger, rec metrics.Recorder, width int) *Service {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &Service{
		client:  client,
		reports: reports,
		logger:  logger,
		metrics: rec,
		width:   width,
	}
}

// Plan reads a report and derives what a cleanup would act on.
func (s *Service) Plan(ctx context.Context, location string) (reconcile.CleanupPlan, error) {
	rows, err := s.reports.Read(ctx, location)
	if err != nil {
		return reconcile.CleanupPlan{}, err
	}
	plan := reconcile.PlanCleanup(rows)
	s.logger.Info("Loaded cleanup plan",
		zap.String("report", location),
		zap.Int("rows", len(rows)),
		zap.Int("assets", len(plan.AssetUIDs)),
		zap.Int("folders", len(plan.FolderUIDs)),
	)
	return plan, nil
}

// Run deletes every asset of the report, then every candidate folder confirmed empty.
// Per-item failures are part of the result; only an unreadable report or a cancelled
// context return an error.
func (s *Service) Run(ctx context.Context, location string, dryRun bool) (*reconcile.CleanupResult, error) {
	plan, err := s.Plan(ctx, location)
	if err != nil {
		return nil, err
	}

	opts := reconcile.CleanupOptions{DryRun: dryRun, Width: s.width}
	result, err := reconcile.ApplyCleanup(ctx, s.client, reconcile.RemoteProber{Counter: s.client}, plan, opts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("cleanup aborted: %w", err)
	}

	attrs := map[string]string{"command": "delete"}
	s.metrics.Add(metrics.AssetsDeleted, int64(result.Summary.AssetsDeleted), attrs)
	s.metrics.Add(metrics.FoldersDeleted, int64(result.Summary.FoldersDeleted), attrs)
	s.metrics.Add(metrics.DeleteFailures, int64(result.Summary.AssetsFailed+result.Summary.FoldersFailed), attrs)

	s.logger.Info("Cleanup finished",
		zap.Bool("dry_run", dryRun),
		zap.Int("assets_deleted", result.Summary.AssetsDeleted),
		zap.Int("assets_failed", result.Summary.AssetsFailed),
		zap.Int("assets_planned", result.Summary.AssetsPlanned),
		zap.Int("folders_deleted", result.Summary.FoldersDeleted),
		zap.Int("folders_skipped", result.Summary.FoldersSkipped),
		zap.Int("folders_failed", result.Summary.FoldersFailed),
		zap.Int("folders_planned", result.Summary.FoldersPlanned),
	)
	return result, nil
}
