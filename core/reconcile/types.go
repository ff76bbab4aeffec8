package reconcile

import "errors"

// RootFolder is the parent id of assets that live outside any folder.
const RootFolder = "root"

// DefaultWidth is the number of external checks allowed in flight at once.
const DefaultWidth = 10

// ErrNothingFound is returned when a scan produces an empty unused set.
var ErrNothingFound = errors.New("no unused assets or empty folders found")

// AssetRecord is one asset of an inventory.
// UID is non-empty and unique within a scan.
type AssetRecord struct {
	UID       string `json:"uid"`
	Filename  string `json:"filename"`
	ParentUID string `json:"parent_uid"`
}

// UnusedEntry is one row of the unused set.
// An entry with an empty UID and Filename stands for an empty folder named by ParentUID.
type UnusedEntry struct {
	UID       string `json:"uid"`
	Filename  string `json:"filename"`
	ParentUID string `json:"parent_uid"`
}

// IsFolder reports whether the entry is the empty-folder sentinel form.
func (e UnusedEntry) IsFolder() bool {
	return e.UID == "" && e.Filename == "" && e.ParentUID != ""
}

// EntryFromAsset converts an unreferenced asset into a report entry.
func EntryFromAsset(a AssetRecord) UnusedEntry {
	return UnusedEntry{UID: a.UID, Filename: a.Filename, ParentUID: a.ParentUID}
}

// FolderEntry builds the sentinel entry for an empty folder.
func FolderEntry(folderID string) UnusedEntry {
	return UnusedEntry{ParentUID: folderID}
}

// ReferencePolicy decides how a failed reference lookup is classified.
type ReferencePolicy struct {
	// ExcludeFailed keeps assets whose lookup failed out of the unused set.
	// The default (false) classifies them as unused so errors never block cleanup;
	// a transient failure can therefore report an asset in use as unused.
	ExcludeFailed bool
}

// ReferenceOutcome is the immutable result of checking one asset.
type ReferenceOutcome struct {
	Asset      AssetRecord
	References int
	Err        error
}

// FolderState is the tri-state result of probing a folder.
type FolderState int

const (
	// FolderUnknown means the probe failed.
	FolderUnknown FolderState = iota
	// FolderEmpty means the folder has no children.
	FolderEmpty
	// FolderNonEmpty means the folder still has children.
	FolderNonEmpty
)

func (s FolderState) String() string {
	switch s {
	case FolderEmpty:
		return "empty"
	case FolderNonEmpty:
		return "non-empty"
	default:
		return "unknown"
	}
}

// FolderOutcome is the immutable result of probing one folder.
type FolderOutcome struct {
	FolderID string
	State    FolderState
	Err      error
}

// Status is the terminal state of a cleanup item.
type Status string

const (
	// StatusDeleted means the delete call succeeded.
	StatusDeleted Status = "deleted"
	// StatusFailed means the delete call failed; there is no retry.
	StatusFailed Status = "failed"
	// StatusSkipped means the folder was not confirmed empty.
	StatusSkipped Status = "skipped"
	// StatusPlanned means the item would be deleted but the run is a dry run.
	StatusPlanned Status = "planned"
)

// CleanupPlan lists what a cleanup run will act on.
type CleanupPlan struct {
	// AssetUIDs are the assets to delete, de-duplicated, in input order.
	AssetUIDs []string `json:"asset_uids"`
	// FolderUIDs are the candidate folders to re-check after asset deletion.
	FolderUIDs []string `json:"folder_uids"`
}

// CleanupOptions controls cleanup behavior.
type CleanupOptions struct {
	// DryRun probes folders but issues no delete calls. Since no asset is removed
	// first, a folder that would only empty out through this run still probes
	// non-empty and counts as skipped, so FoldersPlanned is a lower bound.
	DryRun bool
	// Width bounds concurrent folder probes. Zero means DefaultWidth.
	Width int
}

// AssetResult is the terminal state of one asset delete.
type AssetResult struct {
	UID    string `json:"uid"`
	Status Status `json:"status"`
	Err    error  `json:"-"`
}

// FolderResult is the terminal state of one candidate folder.
type FolderResult struct {
	FolderID string      `json:"folder_id"`
	State    FolderState `json:"state"`
	Status   Status      `json:"status"`
	Err      error       `json:"-"`
}

// CleanupResult holds every item outcome of a cleanup run.
type CleanupResult struct {
	Assets  []AssetResult  `json:"assets"`
	Folders []FolderResult `json:"folders"`
	Summary CleanupSummary `json:"summary"`
}

// CleanupSummary provides aggregate counts for a cleanup run.
type CleanupSummary struct {
	AssetsDeleted  int `json:"assets_deleted"`
	AssetsFailed   int `json:"assets_failed"`
	AssetsPlanned  int `json:"assets_planned"`
	FoldersDeleted int `json:"folders_deleted"`
	FoldersSkipped int `json:"folders_skipped"`
	FoldersFailed  int `json:"folders_failed"`
	FoldersPlanned int `json:"folders_planned"`
}

// MarshalText renders the state by name.
func (s FolderState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
