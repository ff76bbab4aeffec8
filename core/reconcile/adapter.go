package reconcile

import (
	"context"
	"encoding/json"
)

// ReferenceChecker looks up the entities referencing an asset.
type ReferenceChecker interface {
	AssetReferences(ctx context.Context, uid string) ([]json.RawMessage, error)
}

// FolderProber decides whether a folder still has children.
// A failed probe returns FolderUnknown together with the error.
type FolderProber interface {
	Probe(ctx context.Context, folderID string) (FolderState, error)
}

// FolderIndex answers folder membership from a local snapshot.
type FolderIndex interface {
	HasAssets(folderID string) bool
}

// FolderCounter counts the direct children of a folder through the API.
type FolderCounter interface {
	FolderAssetCount(ctx context.Context, folderUID string) (int, error)
}

// Deleter issues the live delete calls of a cleanup run.
type Deleter interface {
	DeleteAsset(ctx context.Context, uid string) error
	DeleteFolder(ctx context.Context, uid string) error
}

// LocalProber answers emptiness from a metadata snapshot without any external call.
type LocalProber struct {
	Index FolderIndex
}

// Probe reports FolderEmpty when the snapshot lists no assets for the folder.
func (p LocalProber) Probe(_ context.Context, folderID string) (FolderState, error) {
	if p.Index.HasAssets(folderID) {
		return FolderNonEmpty, nil
	}
	return FolderEmpty, nil
}

// RemoteProber answers emptiness with a live child count query.
type RemoteProber struct {
	Counter FolderCounter
}

// Probe reports FolderEmpty only when the API confirms a zero count.
func (p RemoteProber) Probe(ctx context.Context, folderID string) (FolderState, error) {
	n, err := p.Counter.FolderAssetCount(ctx, folderID)
	if err != nil {
		return FolderUnknown, err
	}
	if n == 0 {
		return FolderEmpty, nil
	}
	return FolderNonEmpty, nil
}
