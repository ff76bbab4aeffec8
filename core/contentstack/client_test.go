package contentstack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-janitor/core/contentstack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a server with the given handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) contentstack.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := contentstack.NewClient(contentstack.Config{
		Host:   srv.URL,
		Token:  "token-1",
		Branch: "dev",
	}, "key-1")
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		_, err := contentstack.NewClient(contentstack.Config{}, " ")
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		client, err := contentstack.NewClient(contentstack.Config{}, "key")
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClient_Headers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("api_key"))
		assert.Equal(t, "token-1", r.Header.Get("authtoken"))
		assert.Equal(t, "dev", r.Header.Get("branch"))
		_, _ = w.Write([]byte(`{"assets":[]}`))
	})

	_, err := client.ListAssets(context.Background(), 0, 100)
	assert.NoError(t, err)
}

func TestClient_ListAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/assets", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("skip"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"assets":[{"uid":"a1","filename":"x.png","parent_uid":"f1"},{"uid":"a2","filename":"y.png","parent_uid":null}]}`))
	})

	assets, err := client.ListAssets(context.Background(), 200, 100)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, contentstack.Asset{UID: "a1", Filename: "x.png", ParentUID: "f1"}, assets[0])
	assert.Equal(t, "", assets[1].ParentUID)
}

func TestClient_ListFolders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_folders"))
		assert.Equal(t, "true", r.URL.Query().Get("is_dir"))
		_, _ = w.Write([]byte(`{"assets":[{"uid":"f1","is_dir":true},{"uid":"a1","is_dir":false}]}`))
	})

	page, err := client.ListFolders(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, page.RawLen)
	require.Len(t, page.Folders, 1)
	assert.Equal(t, "f1", page.Folders[0].UID)
}

func TestClient_FolderAssetCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"CountField", `{"assets":[{"uid":"a1"}],"count":7}`, 7},
		{"ZeroCount", `{"assets":[],"count":0}`, 0},
		{"NoCountFallsBackToLength", `{"assets":[{"uid":"a1"},{"uid":"a2"}]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "f1", r.URL.Query().Get("folder"))
				assert.Equal(t, "true", r.URL.Query().Get("include_count"))
				_, _ = w.Write([]byte(tt.body))
			})

			n, err := client.FolderAssetCount(context.Background(), "f1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

// TestClient_FolderAssetCount_AssetsOnly pins the query to direct assets: sub-folders
// are not requested, so a folder holding only sub-folders counts zero.
func TestClient_FolderAssetCount_AssetsOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/assets", r.URL.Path)
		assert.False(t, r.URL.Query().Has("include_folders"))
		assert.False(t, r.URL.Query().Has("is_dir"))
		_, _ = w.Write([]byte(`{"assets":[],"count":0}`))
	})

	n, err := client.FolderAssetCount(context.Background(), "parent-of-subfolders")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClient_AssetReferences(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/assets/a1/references", r.URL.Path)
		_, _ = w.Write([]byte(`{"references":[{"entry_uid":"e1"},{"entry_uid":"e2"}]}`))
	})

	refs, err := client.AssetReferences(context.Background(), "a1")
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestClient_Delete(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"notice":"deleted"}`))
	})

	require.NoError(t, client.DeleteAsset(context.Background(), "a1"))
	require.NoError(t, client.DeleteFolder(context.Background(), "f1"))
	assert.Equal(t, []string{"/v3/assets/a1", "/v3/assets/folders/f1"}, paths)
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_message":"not found"}`))
	})

	err := client.DeleteAsset(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, contentstack.IsNotFound(err))

	var apiErr *contentstack.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "not found")
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.AssetReferences(context.Background(), "a1")
	assert.Error(t, err)
}
