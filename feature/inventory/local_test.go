package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"asset-janitor/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	raw := []byte(`{
		"root": [{"uid":"r1","filename":"logo.svg","parent_uid":null}],
		"f1": [
			{"uid":"a1","filename":"x.png","parent_uid":"f1"},
			{"filename":"no-uid.png","parent_uid":"f1"},
			"garbage"
		],
		"f2": [],
		"f3": {"not":"an array"},
		"f4": [{"uid":"a1","filename":"dup.png","parent_uid":"f4"}]
	}`)

	m, err := ParseMetadata(raw)
	require.NoError(t, err)

	assets := m.Flatten()
	assert.Equal(t, []reconcile.AssetRecord{
		{UID: "a1", Filename: "x.png", ParentUID: "f1"},
		{UID: "r1", Filename: "logo.svg", ParentUID: ""},
	}, assets)

	t.Run("HasAssets", func(t *testing.T) {
		assert.True(t, m.HasAssets("f1"))
		assert.True(t, m.HasAssets("root"))
		assert.False(t, m.HasAssets("f2"))
		assert.False(t, m.HasAssets("f3"))
		assert.False(t, m.HasAssets("missing"))
	})

	assert.Equal(t, []string{"f1", "f2", "f4", "root"}, m.FolderIDs())
}

func TestParseMetadata_InvalidShape(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, ``, `{"broken":`} {
		_, err := ParseMetadata([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidMetadata, raw)
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MetadataFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"root":[],"f1":[{"uid":"a1","filename":"x.png","parent_uid":"f1"}]}`), 0o644))

	m, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Len(t, m.Flatten(), 1)

	_, err = LoadMetadata(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestLoadFolders(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		ids, err := LoadFolders(filepath.Join(dir, "none.json"))
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(dir, FoldersFile)
		require.NoError(t, os.WriteFile(path, []byte(`[{"uid":"f1","name":"Images"},{"uid":""},{"uid":"f2"}]`), 0o644))

		ids, err := LoadFolders(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"f1", "f2"}, ids)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"uid":"f1"}`), 0o644))

		_, err := LoadFolders(path)
		assert.Error(t, err)
	})
}
