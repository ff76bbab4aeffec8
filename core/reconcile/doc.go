// Package reconcile finds and removes unused assets by reconciling an asset inventory
// against reference data from the CMS.
//
// The package is source-agnostic: inventories, reference lookups, folder probes and
// delete calls all come in through small interfaces (see adapter.go), so the same
// engine backs the local scan, the remote scan and the cleanup run.
//
// # Pipeline
//
//  1. CheckReferences fans out one lookup per asset through a bounded Limiter
//     (DefaultWidth in flight). Each unit returns an immutable ReferenceOutcome.
//  2. Classify folds the outcomes into the unused set in a single step.
//  3. CheckFolders probes candidate folders through the same kind of limiter and
//     EmptyFolderEntries turns confirmed-empty folders into sentinel entries.
//  4. Merge combines both into one report set.
//
// Cleanup runs use PlanCleanup and ApplyCleanup instead of steps 2-4.
//
// # Failure Bias
//
// A failed reference lookup classifies the asset as unused unless
// ReferencePolicy.ExcludeFailed is set. A failed folder probe yields FolderUnknown,
// which ResolveFolderState maps to FolderNonEmpty: a folder is only deleted when a
// probe positively confirmed it empty.
//
// # Usage Example
//
//	outcomes, err := reconcile.CheckReferences(ctx, client, assets, reconcile.NewLimiter(10), log)
//	unused := reconcile.Classify(outcomes, reconcile.ReferencePolicy{})
//
//	plan := reconcile.PlanCleanup(rows)
//	result, err := reconcile.ApplyCleanup(ctx, client, reconcile.RemoteProber{Counter: client}, plan, reconcile.CleanupOptions{}, log)
package reconcile
