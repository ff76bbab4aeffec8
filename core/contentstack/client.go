package contentstack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Asset is a single entry of an asset listing. Folders share the shape and are
// flagged with IsDir.
type Asset struct {
	UID       string `json:"uid"`
	Filename  string `json:"filename"`
	ParentUID string `json:"parent_uid"`
	IsDir     bool   `json:"is_dir"`
}

// Client defines the Contentstack asset operations used by scans and cleanups.
type Client interface {
	// ListAssets returns one page of assets starting at skip.
	ListAssets(ctx context.Context, skip, limit int) ([]Asset, error)
	// ListFolders returns one page of the directory listing, folders only.
	// The returned slice may be shorter than the raw page; callers paginate on RawLen.
	ListFolders(ctx context.Context, skip, limit int) (FolderPage, error)
	// FolderAssetCount returns the number of assets filed directly in a folder; sub-folders are not counted.
	FolderAssetCount(ctx context.Context, folderUID string) (int, error)
	// AssetReferences returns the entities referencing an asset.
	AssetReferences(ctx context.Context, uid string) ([]json.RawMessage, error)
	// DeleteAsset deletes a single asset.
	DeleteAsset(ctx context.Context, uid string) error
	// DeleteFolder deletes a single asset folder.
	DeleteFolder(ctx context.Context, uid string) error
}

// FolderPage is one page of the directory listing.
type FolderPage struct {
	// Folders holds the entries flagged as directories.
	Folders []Asset
	// RawLen is the number of entries the API returned before filtering.
	RawLen int
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contentstack %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type httpClient struct {
	baseURL    string
	apiKey     string
	token      string
	branch     string
	httpClient *http.Client
}

type assetsResponse struct {
	Assets []Asset `json:"assets"`
	Count  *int    `json:"count,omitempty"`
}

type referencesResponse struct {
	References []json.RawMessage `json:"references"`
}

// NewClient creates a Contentstack client bound to one stack api key.
func NewClient(cfg Config, apiKey string) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("contentstack api key is required")
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "api.contentstack.io"
	}
	baseURL := host
	if !strings.Contains(host, "://") {
		baseURL = "https://" + host
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Same transport limits as the storage client; a stalled API must not hang a worker forever
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	return &httpClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		token:      cfg.Token,
		branch:     branch,
		httpClient: &http.Client{Transport: transport},
	}, nil
}

func (c *httpClient) ListAssets(ctx context.Context, skip, limit int) ([]Asset, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var res assetsResponse
	if err := c.do(ctx, http.MethodGet, "/v3/assets", q, &res); err != nil {
		return nil, err
	}
	return res.Assets, nil
}

func (c *httpClient) ListFolders(ctx context.Context, skip, limit int) (FolderPage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("include_folders", "true")
	q.Set("is_dir", "true")

	var res assetsResponse
	if err := c.do(ctx, http.MethodGet, "/v3/assets", q, &res); err != nil {
		return FolderPage{}, err
	}

	page := FolderPage{RawLen: len(res.Assets)}
	for _, a := range res.Assets {
		if a.IsDir {
			page.Folders = append(page.Folders, a)
		}
	}
	return page, nil
}

// FolderAssetCount counts the assets filed directly in the folder. Sub-folders are
// not counted, so a folder holding only sub-folders reports zero.
func (c *httpClient) FolderAssetCount(ctx context.Context, folderUID string) (int, error) {
	q := url.Values{}
	q.Set("folder", folderUID)
	q.Set("include_count", "true")

	var res assetsResponse
	if err := c.do(ctx, http.MethodGet, "/v3/assets", q, &res); err != nil {
		return 0, err
	}
	if res.Count != nil {
		return *res.Count, nil
	}
	return len(res.Assets), nil
}

func (c *httpClient) AssetReferences(ctx context.Context, uid string) ([]json.RawMessage, error) {
	var res referencesResponse
	if err := c.do(ctx, http.MethodGet, "/v3/assets/"+url.PathEscape(uid)+"/references", nil, &res); err != nil {
		return nil, err
	}
	return res.References, nil
}

func (c *httpClient) DeleteAsset(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/v3/assets/"+url.PathEscape(uid), nil, nil)
}

func (c *httpClient) DeleteFolder(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/v3/assets/folders/"+url.PathEscape(uid), nil, nil)
}

// do performs one request and decodes a JSON body into out when out is non-nil.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("authtoken", c.token)
	req.Header.Set("branch", c.branch)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contentstack %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
