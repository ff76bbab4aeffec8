package reconcile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// PlanCleanup derives the assets to delete and the folders to re-check from report rows.
// Rows without a uid contribute only their folder. The root sentinel is never a candidate.
func PlanCleanup(rows []UnusedEntry) CleanupPlan {
	plan := CleanupPlan{
		AssetUIDs:  make([]string, 0, len(rows)),
		FolderUIDs: make([]string, 0),
	}

	seenAssets := make(map[string]struct{}, len(rows))
	parents := make([]string, 0, len(rows))

	for _, row := range rows {
		uid := strings.TrimSpace(row.UID)
		if uid != "" {
			if _, dup := seenAssets[uid]; !dup {
				seenAssets[uid] = struct{}{}
				plan.AssetUIDs = append(plan.AssetUIDs, uid)
			}
		}
		parents = append(parents, strings.TrimSpace(row.ParentUID))
	}

	plan.FolderUIDs = CandidateFolders(parents)
	return plan
}

// ApplyCleanup executes a cleanup plan.
//
// Every asset delete is started at once and awaited jointly. Only after all asset
// deletes were attempted is each candidate folder re-checked live, through a bounded
// limiter, and deleted when confirmed empty. A failed call is logged and recorded;
// it never stops the rest of the batch.
func ApplyCleanup(ctx context.Context, deleter Deleter, prober FolderProber, plan CleanupPlan, opts CleanupOptions, logger *zap.Logger) (*CleanupResult, error) {
	result := &CleanupResult{
		Assets:  make([]AssetResult, len(plan.AssetUIDs)),
		Folders: make([]FolderResult, 0, len(plan.FolderUIDs)),
	}

	// Step 1: delete assets
	err := Unbounded().Run(ctx, len(plan.AssetUIDs), func(ctx context.Context, i int) {
		uid := plan.AssetUIDs[i]
		if opts.DryRun {
			result.Assets[i] = AssetResult{UID: uid, Status: StatusPlanned}
			return
		}
		if err := deleter.DeleteAsset(ctx, uid); err != nil {
			logger.Warn("Failed to delete asset", zap.String("uid", uid), zap.Error(err))
			result.Assets[i] = AssetResult{UID: uid, Status: StatusFailed, Err: err}
			return
		}
		logger.Info("Deleted asset", zap.String("uid", uid))
		result.Assets[i] = AssetResult{UID: uid, Status: StatusDeleted}
	})
	if err != nil {
		return nil, fmt.Errorf("asset deletion interrupted: %w", err)
	}

	// Step 2: re-check candidate folders
	outcomes, err := CheckFolders(ctx, prober, plan.FolderUIDs, NewLimiter(opts.Width), logger)
	if err != nil {
		return nil, err
	}

	// Step 3: delete folders confirmed empty
	for _, o := range outcomes {
		fr := FolderResult{FolderID: o.FolderID, State: ResolveFolderState(o.State), Err: o.Err}

		switch {
		case !ShouldDeleteFolder(o.State):
			logger.Info("Folder is not empty, skipping delete", zap.String("folder", o.FolderID), zap.Stringer("state", o.State))
			fr.Status = StatusSkipped
		case opts.DryRun:
			fr.Status = StatusPlanned
		default:
			if err := deleter.DeleteFolder(ctx, o.FolderID); err != nil {
				logger.Warn("Failed to delete folder", zap.String("folder", o.FolderID), zap.Error(err))
				fr.Status = StatusFailed
				fr.Err = err
			} else {
				logger.Info("Deleted empty folder", zap.String("folder", o.FolderID))
				fr.Status = StatusDeleted
			}
		}

		result.Folders = append(result.Folders, fr)
	}

	result.Summary = summarize(result)
	return result, nil
}

// summarize counts terminal states across a cleanup result.
func summarize(result *CleanupResult) CleanupSummary {
	var s CleanupSummary
	for _, a := range result.Assets {
		switch a.Status {
		case StatusDeleted:
			s.AssetsDeleted++
		case StatusFailed:
			s.AssetsFailed++
		case StatusPlanned:
			s.AssetsPlanned++
		}
	}
	for _, f := range result.Folders {
		switch f.Status {
		case StatusDeleted:
			s.FoldersDeleted++
		case StatusFailed:
			s.FoldersFailed++
		case StatusSkipped:
			s.FoldersSkipped++
		case StatusPlanned:
			s.FoldersPlanned++
		}
	}
	return s
}
