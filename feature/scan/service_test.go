package scan

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"asset-janitor/core/contentstack"
	"asset-janitor/core/contentstack/mocks"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/report"
	"asset-janitor/core/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorded struct {
	totals map[string]int64
}

func (r *recorded) Add(metric metrics.Name, n int64, attrs map[string]string) {
	r.totals[string(metric)] += n
}

func (r *recorded) Shutdown(ctx context.Context) error {
	return nil
}

func writeExport(t *testing.T, metadata, folders string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(metadata), 0o644))
	if folders != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "folders.json"), []byte(folders), 0o644))
	}
	return dir
}

func newService(client contentstack.Client, cfg Config) (*Service, *recorded) {
	rec := &recorded{totals: make(map[string]int64)}
	return NewService(client, report.NewStore(nil), zap.NewNop(), rec, cfg), rec
}

func readReport(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

// TestScanLocal_Scenario covers an unreferenced asset in a folder that still holds it.
func TestScanLocal_Scenario(t *testing.T) {
	dir := writeExport(t,
		`{"root": [], "f1": [{"uid": "a1", "filename": "x.png", "parent_uid": "f1"}]}`,
		`[{"uid": "f1"}]`,
	)
	out := filepath.Join(t.TempDir(), "local.csv")

	client := new(mocks.Client)
	client.On("AssetReferences", mock.Anything, "a1").Return([]json.RawMessage{}, nil)

	svc, rec := newService(client, Config{OutputFile: out, EmptyFolderCheck: true, Concurrency: 10})
	res, err := svc.ScanLocal(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, out, res.Output)
	assert.Equal(t, []reconcile.UnusedEntry{{UID: "a1", Filename: "x.png", ParentUID: "f1"}}, res.Unused)
	assert.Empty(t, res.EmptyFolders)
	assert.Equal(t, "uid,filename,parent_uid\na1,x.png,f1\n", readReport(t, out))

	assert.EqualValues(t, 1, rec.totals["janitor.assets.checked"])
	assert.EqualValues(t, 1, rec.totals["janitor.assets.unused"])
	client.AssertNotCalled(t, "FolderAssetCount", mock.Anything, mock.Anything)
}

func TestScanLocal_EmptyFolders(t *testing.T) {
	dir := writeExport(t,
		`{"root": [{"uid": "a0", "filename": "r.png", "parent_uid": "root"}], "f1": [], "f2": [{"uid": "a2", "filename": "y.png", "parent_uid": "f2"}]}`,
		`[{"uid": "f1"}, {"uid": "f3"}]`,
	)
	out := filepath.Join(t.TempDir(), "local.csv")

	client := new(mocks.Client)
	client.On("AssetReferences", mock.Anything, "a0").Return([]json.RawMessage{json.RawMessage(`{}`)}, nil)
	client.On("AssetReferences", mock.Anything, "a2").Return(nil, errors.New("timeout"))

	svc, _ := newService(client, Config{OutputFile: out, EmptyFolderCheck: true})
	res, err := svc.ScanLocal(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, res.FailedChecks)
	assert.Equal(t, []reconcile.UnusedEntry{
		{UID: "a2", Filename: "y.png", ParentUID: "f2"},
		{ParentUID: "f1"},
		{ParentUID: "f3"},
	}, reconcile.Merge(res.Unused, res.EmptyFolders))
	assert.Equal(t, "uid,filename,parent_uid\na2,y.png,f2\n,,f1\n,,f3\n", readReport(t, out))
}

func TestScanLocal_FolderCheckDisabled(t *testing.T) {
	dir := writeExport(t, `{"f1": []}`, `[{"uid": "f1"}]`)
	out := filepath.Join(t.TempDir(), "local.csv")

	svc, _ := newService(new(mocks.Client), Config{OutputFile: out})
	res, err := svc.ScanLocal(context.Background(), dir)
	require.ErrorIs(t, err, reconcile.ErrNothingFound)
	assert.Empty(t, res.Output)
	assert.NoFileExists(t, out)
}

func TestScanLocal_ExcludeFailedChecks(t *testing.T) {
	dir := writeExport(t, `{"f1": [{"uid": "a1", "filename": "x.png", "parent_uid": "f1"}]}`, "")
	out := filepath.Join(t.TempDir(), "local.csv")

	client := new(mocks.Client)
	client.On("AssetReferences", mock.Anything, "a1").Return(nil, errors.New("500"))

	svc, _ := newService(client, Config{OutputFile: out, ExcludeFailedChecks: true})
	res, err := svc.ScanLocal(context.Background(), dir)
	require.ErrorIs(t, err, reconcile.ErrNothingFound)
	assert.Equal(t, 1, res.FailedChecks)
}

func TestScanLocal_InvalidMetadata(t *testing.T) {
	dir := writeExport(t, `["a1"]`, "")

	svc, _ := newService(new(mocks.Client), Config{OutputFile: filepath.Join(dir, "out.csv")})
	_, err := svc.ScanLocal(context.Background(), dir)
	require.Error(t, err)
}

func TestScanRemote(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "remote.csv")

	client := new(mocks.Client)
	client.On("ListAssets", mock.Anything, 0, 100).Return([]contentstack.Asset{
		{UID: "a1", Filename: "x.png", ParentUID: "f1"},
		{UID: "a2", Filename: "y.png", ParentUID: "root"},
	}, nil).Once()
	client.On("AssetReferences", mock.Anything, "a1").Return([]json.RawMessage{json.RawMessage(`{"uid":"e1"}`)}, nil)
	client.On("AssetReferences", mock.Anything, "a2").Return([]json.RawMessage{}, nil)
	client.On("ListFolders", mock.Anything, 0, 100).Return(contentstack.FolderPage{
		Folders: []contentstack.Asset{{UID: "f1", IsDir: true}, {UID: "f2", IsDir: true}, {UID: "f3", IsDir: true}},
		RawLen:  3,
	}, nil).Once()
	client.On("FolderAssetCount", mock.Anything, "f1").Return(1, nil)
	client.On("FolderAssetCount", mock.Anything, "f2").Return(0, nil)
	client.On("FolderAssetCount", mock.Anything, "f3").Return(0, errors.New("429"))

	svc, rec := newService(client, Config{OutputPath: out, EmptyFolderCheck: true, Concurrency: 2})
	res, err := svc.ScanRemote(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Assets)
	assert.Equal(t, "uid,filename,parent_uid\na2,y.png,root\n,,f2\n", readReport(t, out))
	assert.EqualValues(t, 1, rec.totals["janitor.folders.empty"])
	client.AssertExpectations(t)
}

func TestScanRemote_ListingFailureIsFatal(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListAssets", mock.Anything, 0, 100).Return(nil, errors.New("503"))

	svc, _ := newService(client, Config{OutputPath: filepath.Join(t.TempDir(), "r.csv")})
	_, err := svc.ScanRemote(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, reconcile.ErrNothingFound)
	client.AssertNotCalled(t, "AssetReferences", mock.Anything, mock.Anything)
}

func TestScanRemote_NothingFound(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListAssets", mock.Anything, 0, 100).Return([]contentstack.Asset{}, nil)

	svc, _ := newService(client, Config{OutputPath: filepath.Join(t.TempDir(), "r.csv")})
	res, err := svc.ScanRemote(context.Background())
	require.ErrorIs(t, err, reconcile.ErrNothingFound)
	assert.Zero(t, res.Assets)
}
