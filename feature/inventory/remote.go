package inventory

import (
	"context"
	"fmt"

	"asset-janitor/core/contentstack"
	"asset-janitor/core/reconcile"
)

// Lister is the part of the Contentstack client used to page through listings.
type Lister interface {
	ListAssets(ctx context.Context, skip, limit int) ([]contentstack.Asset, error)
	ListFolders(ctx context.Context, skip, limit int) (contentstack.FolderPage, error)
}

// Remote pages through the live asset listing.
type Remote struct {
	lister   Lister
	pageSize int
}

// NewRemote creates a remote inventory with the fixed page size.
func NewRemote(lister Lister) *Remote {
	return &Remote{lister: lister, pageSize: contentstack.PageSize}
}

// ListAll fetches every asset, stopping at the first page shorter than the page size.
// A failed page fails the whole listing.
func (r *Remote) ListAll(ctx context.Context) ([]reconcile.AssetRecord, error) {
	out := make([]reconcile.AssetRecord, 0)
	seen := make(map[string]struct{})

	for skip := 0; ; skip += r.pageSize {
		page, err := r.lister.ListAssets(ctx, skip, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets at skip=%d: %w", skip, err)
		}

		for _, a := range page {
			if a.UID == "" {
				continue
			}
			if _, dup := seen[a.UID]; dup {
				continue
			}
			seen[a.UID] = struct{}{}
			out = append(out, reconcile.AssetRecord{UID: a.UID, Filename: a.Filename, ParentUID: a.ParentUID})
		}

		if len(page) < r.pageSize {
			return out, nil
		}
	}
}

// ListFolderIDs fetches the id of every folder from the directory listing.
// Pagination follows the unfiltered page length.
func (r *Remote) ListFolderIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)

	for skip := 0; ; skip += r.pageSize {
		page, err := r.lister.ListFolders(ctx, skip, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list folders at skip=%d: %w", skip, err)
		}

		for _, f := range page.Folders {
			ids = append(ids, f.UID)
		}

		if page.RawLen < r.pageSize {
			return reconcile.CandidateFolders(ids), nil
		}
	}
}
