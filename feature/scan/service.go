package scan

import (
	"context"
	"fmt"
	"path/filepath"

	"asset-janitor/core/contentstack"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/report"
	"asset-janitor/core/telemetry/metrics"
	"asset-janitor/feature/inventory"

	"go.uber.org/zap"
)

// Service runs local and remote scans.
type Service struct {
	client  contentstack.Client
	reports *report.Store
	logger  *zap.Logger
	metrics metrics.Recorder
	cfg     Config
}

// Result summarizes one scan.
type Result struct {
	// Assets is the number of inventory records checked.
	Assets int
	// Unused holds the unreferenced assets.
	Unused []reconcile.UnusedEntry
	// EmptyFolders holds the sentinel entries of empty folders.
	EmptyFolders []reconcile.UnusedEntry
	// FailedChecks counts reference lookups that returned an error.
	FailedChecks int
	// Output is where the report was written; empty when nothing was found.
	Output string
}

// NewService creates a new scan service.
func NewService(client contentstack.Client, reports *report.Store, logger *zap.Logger, rec metrics.Recorder, cfg Config) *Service {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &Service{
		client:  client,
		reports: reports,
		logger:  logger,
		metrics: rec,
		cfg:     cfg,
	}
}

// ScanLocal checks every asset of a local export folder and writes the report to OutputFile.
// It returns reconcile.ErrNothingFound, together with the result, when nothing is unused.
func (s *Service) ScanLocal(ctx context.Context, localFolder string) (*Result, error) {
	meta, err := inventory.LoadMetadata(filepath.Join(localFolder, inventory.MetadataFile))
	if err != nil {
		return nil, err
	}
	assets := meta.Flatten()
	s.logger.Info("Loaded local metadata", zap.Int("assets", len(assets)), zap.Int("folders", len(meta.FolderIDs())))

	res, err := s.classify(ctx, "scan-local", assets)
	if err != nil {
		return nil, err
	}

	if s.cfg.EmptyFolderCheck {
		listed, err := inventory.LoadFolders(filepath.Join(localFolder, inventory.FoldersFile))
		if err != nil {
			return nil, err
		}
		candidates := reconcile.CandidateFolders(listed, meta.FolderIDs(), reconcile.FoldersOf(assets))

		res.EmptyFolders, err = s.emptyFolders(ctx, "scan-local", reconcile.LocalProber{Index: meta}, candidates)
		if err != nil {
			return nil, err
		}
	}

	return s.finish(ctx, res, s.cfg.OutputFile)
}

// ScanRemote pages through the live inventory and writes the report to OutputPath.
// It returns reconcile.ErrNothingFound, together with the result, when nothing is unused.
func (s *Service) ScanRemote(ctx context.Context) (*Result, error) {
	remote := inventory.NewRemote(s.client)

	assets, err := remote.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Listed remote assets", zap.Int("assets", len(assets)))

	res, err := s.classify(ctx, "scan-remote", assets)
	if err != nil {
		return nil, err
	}

	if s.cfg.EmptyFolderCheck {
		s.logger.Info("Checking for empty folders...")
		folderIDs, err := remote.ListFolderIDs(ctx)
		if err != nil {
			return nil, err
		}

		res.EmptyFolders, err = s.emptyFolders(ctx, "scan-remote", reconcile.RemoteProber{Counter: s.client}, folderIDs)
		if err != nil {
			return nil, err
		}
	}

	return s.finish(ctx, res, s.cfg.OutputPath)
}

func (s *Service) limiter() *reconcile.Limiter {
	return reconcile.NewLimiter(s.cfg.Concurrency)
}

// classify runs the bounded reference check and folds the outcomes.
func (s *Service) classify(ctx context.Context, command string, assets []reconcile.AssetRecord) (*Result, error) {
	outcomes, err := reconcile.CheckReferences(ctx, s.client, assets, s.limiter(), s.logger)
	if err != nil {
		return nil, err
	}

	res := &Result{Assets: len(assets)}
	for _, o := range outcomes {
		if o.Err != nil {
			res.FailedChecks++
		}
	}
	res.Unused = reconcile.Classify(outcomes, reconcile.ReferencePolicy{ExcludeFailed: s.cfg.ExcludeFailedChecks})

	if res.FailedChecks > 0 {
		s.logger.Warn("Some reference lookups failed",
			zap.Int("failed", res.FailedChecks),
			zap.Bool("reported_as_unused", !s.cfg.ExcludeFailedChecks),
		)
	}

	attrs := map[string]string{"command": command}
	s.metrics.Add(metrics.AssetsChecked, int64(len(assets)), attrs)
	s.metrics.Add(metrics.AssetsUnused, int64(len(res.Unused)), attrs)
	s.metrics.Add(metrics.ReferenceError, int64(res.FailedChecks), attrs)

	return res, nil
}

func (s *Service) emptyFolders(ctx context.Context, command string, prober reconcile.FolderProber, candidates []string) ([]reconcile.UnusedEntry, error) {
	outcomes, err := reconcile.CheckFolders(ctx, prober, candidates, s.limiter(), s.logger)
	if err != nil {
		return nil, err
	}
	entries := reconcile.EmptyFolderEntries(outcomes)

	s.logger.Info("Checked folders", zap.Int("candidates", len(candidates)), zap.Int("empty", len(entries)))
	s.metrics.Add(metrics.FoldersEmpty, int64(len(entries)), map[string]string{"command": command})
	return entries, nil
}

// finish merges the result and writes it unless it is empty.
func (s *Service) finish(ctx context.Context, res *Result, destination string) (*Result, error) {
	rows := reconcile.Merge(res.Unused, res.EmptyFolders)
	if len(rows) == 0 {
		return res, reconcile.ErrNothingFound
	}

	if err := s.reports.Write(ctx, destination, rows); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	res.Output = destination
	return res, nil
}
