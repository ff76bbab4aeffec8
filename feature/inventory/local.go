package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"asset-janitor/core/reconcile"
)

const (
	// MetadataFile is the snapshot file name inside a local export folder.
	MetadataFile = "metadata.json"
	// FoldersFile lists the folders of a local export.
	FoldersFile = "folders.json"
)

// ErrInvalidMetadata is returned when the snapshot is not an object of folder -> asset[].
var ErrInvalidMetadata = errors.New("expected metadata to contain an object of folder -> asset[]")

// Metadata is a local snapshot mapping folder ids (or "root") to their assets.
type Metadata struct {
	folders map[string][]reconcile.AssetRecord
	sizes   map[string]int
}

// LoadMetadata reads and parses a metadata snapshot.
func LoadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", path, err)
	}
	return ParseMetadata(raw)
}

// ParseMetadata parses a metadata snapshot.
// Values that are not arrays and array entries that are not objects are ignored.
func ParseMetadata(raw []byte) (*Metadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidMetadata
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	m := &Metadata{
		folders: make(map[string][]reconcile.AssetRecord, len(top)),
		sizes:   make(map[string]int, len(top)),
	}

	for folderID, value := range top {
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			continue
		}
		m.sizes[folderID] = len(items)

		assets := make([]reconcile.AssetRecord, 0, len(items))
		for _, item := range items {
			var a reconcile.AssetRecord
			if err := json.Unmarshal(item, &a); err != nil {
				continue
			}
			assets = append(assets, a)
		}
		m.folders[folderID] = assets
	}

	return m, nil
}

// Flatten returns every asset with a uid, de-duplicated by uid.
// Folders are visited in sorted order so the result is deterministic.
func (m *Metadata) Flatten() []reconcile.AssetRecord {
	out := make([]reconcile.AssetRecord, 0)
	seen := make(map[string]struct{})

	for _, folderID := range m.FolderIDs() {
		for _, a := range m.folders[folderID] {
			if a.UID == "" {
				continue
			}
			if _, dup := seen[a.UID]; dup {
				continue
			}
			seen[a.UID] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// FolderIDs returns the sorted keys of the snapshot, root included.
func (m *Metadata) FolderIDs() []string {
	ids := make([]string, 0, len(m.folders))
	for id := range m.folders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasAssets reports whether the snapshot lists at least one entry for folderID.
// Absent folders and zero-length arrays are empty.
func (m *Metadata) HasAssets(folderID string) bool {
	return m.sizes[folderID] > 0
}

type folderRecord struct {
	UID string `json:"uid"`
}

// LoadFolders reads a JSON array of {uid} objects.
// A missing file yields no folders.
func LoadFolders(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read folders %s: %w", path, err)
	}

	var records []folderRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("expected folders file to contain an array of {uid}: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r.UID != "" {
			ids = append(ids, r.UID)
		}
	}
	return ids, nil
}
