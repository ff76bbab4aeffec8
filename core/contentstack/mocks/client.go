package mocks

import (
	"context"
	"encoding/json"

	"asset-janitor/core/contentstack"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of contentstack.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListAssets(ctx context.Context, skip, limit int) ([]contentstack.Asset, error) {
	args := m.Called(ctx, skip, limit)
	if assets, ok := args.Get(0).([]contentstack.Asset); ok {
		return assets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListFolders(ctx context.Context, skip, limit int) (contentstack.FolderPage, error) {
	args := m.Called(ctx, skip, limit)
	if page, ok := args.Get(0).(contentstack.FolderPage); ok {
		return page, args.Error(1)
	}
	return contentstack.FolderPage{}, args.Error(1)
}

func (m *Client) FolderAssetCount(ctx context.Context, folderUID string) (int, error) {
	args := m.Called(ctx, folderUID)
	return args.Int(0), args.Error(1)
}

func (m *Client) AssetReferences(ctx context.Context, uid string) ([]json.RawMessage, error) {
	args := m.Called(ctx, uid)
	if refs, ok := args.Get(0).([]json.RawMessage); ok {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteAsset(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *Client) DeleteFolder(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
