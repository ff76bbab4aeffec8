package reconcile

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// CheckReferences looks up references for every asset through the limiter.
// Each unit fills only its own slot; a lookup error is kept on the outcome.
func CheckReferences(ctx context.Context, checker ReferenceChecker, assets []AssetRecord, limiter *Limiter, logger *zap.Logger) ([]ReferenceOutcome, error) {
	outcomes := make([]ReferenceOutcome, len(assets))

	err := limiter.Run(ctx, len(assets), func(ctx context.Context, i int) {
		asset := assets[i]
		refs, err := checker.AssetReferences(ctx, asset.UID)
		if err != nil {
			logger.Warn("Failed to fetch references", zap.String("uid", asset.UID), zap.Error(err))
		}
		outcomes[i] = ReferenceOutcome{Asset: asset, References: len(refs), Err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("reference check interrupted: %w", err)
	}

	return outcomes, nil
}

// Classify folds reference outcomes into the unused set.
// An asset with at least one reference is never included.
func Classify(outcomes []ReferenceOutcome, policy ReferencePolicy) []UnusedEntry {
	unused := make([]UnusedEntry, 0)
	for _, o := range outcomes {
		if o.Err != nil {
			if policy.ExcludeFailed {
				continue
			}
			unused = append(unused, EntryFromAsset(o.Asset))
			continue
		}
		if o.References == 0 {
			unused = append(unused, EntryFromAsset(o.Asset))
		}
	}
	return unused
}

// CheckFolders probes every folder through the limiter.
func CheckFolders(ctx context.Context, prober FolderProber, folderIDs []string, limiter *Limiter, logger *zap.Logger) ([]FolderOutcome, error) {
	outcomes := make([]FolderOutcome, len(folderIDs))

	err := limiter.Run(ctx, len(folderIDs), func(ctx context.Context, i int) {
		id := folderIDs[i]
		state, err := prober.Probe(ctx, id)
		if err != nil {
			logger.Warn("Could not check folder, assuming not empty", zap.String("folder", id), zap.Error(err))
			state = FolderUnknown
		}
		outcomes[i] = FolderOutcome{FolderID: id, State: state, Err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("folder check interrupted: %w", err)
	}

	return outcomes, nil
}

// ResolveFolderState maps an unknown probe result to non-empty.
// Skipping a deletion is preferred over deleting a folder that may hold assets.
func ResolveFolderState(s FolderState) FolderState {
	if s == FolderUnknown {
		return FolderNonEmpty
	}
	return s
}

// ShouldDeleteFolder reports whether a folder in state s may be removed.
func ShouldDeleteFolder(s FolderState) bool {
	return ResolveFolderState(s) == FolderEmpty
}

// EmptyFolderEntries emits one sentinel entry per folder confirmed empty.
func EmptyFolderEntries(outcomes []FolderOutcome) []UnusedEntry {
	entries := make([]UnusedEntry, 0)
	seen := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		if !ShouldDeleteFolder(o.State) {
			continue
		}
		if _, dup := seen[o.FolderID]; dup {
			continue
		}
		seen[o.FolderID] = struct{}{}
		entries = append(entries, FolderEntry(o.FolderID))
	}
	return entries
}

// Merge combines unused assets and empty folders into one report set.
func Merge(unused, emptyFolders []UnusedEntry) []UnusedEntry {
	merged := make([]UnusedEntry, 0, len(unused)+len(emptyFolders))
	merged = append(merged, unused...)
	merged = append(merged, emptyFolders...)
	return merged
}

// FoldersOf returns the distinct non-root parent ids of the given assets.
func FoldersOf(assets []AssetRecord) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ParentUID)
	}
	return CandidateFolders(ids)
}

// CandidateFolders returns the sorted union of the given folder ids,
// dropping blanks and the root sentinel.
func CandidateFolders(sources ...[]string) []string {
	set := make(map[string]struct{})
	for _, ids := range sources {
		for _, id := range ids {
			if id == "" || id == RootFolder {
				continue
			}
			set[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
