package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"asset-janitor/core/reconcile"
	"asset-janitor/core/storage"

	"github.com/minio/minio-go/v7"
)

// Header is the fixed column set of every report.
var Header = []string{"uid", "filename", "parent_uid"}

// Encode writes rows as CSV with the fixed header.
func Encode(w io.Writer, rows []reconcile.UnusedEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.UID, r.Filename, r.ParentUID}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses a report. The first record is always treated as the header.
// Surrounding quotes and whitespace are stripped from uid and parent_uid; filename
// is kept as parsed. Short rows leave the missing columns empty.
func Decode(r io.Reader) ([]reconcile.UnusedEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	if len(records) == 0 {
		return []reconcile.UnusedEntry{}, nil
	}

	rows := make([]reconcile.UnusedEntry, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, reconcile.UnusedEntry{
			UID:       clean(field(rec, 0)),
			Filename:  field(rec, 1),
			ParentUID: clean(field(rec, 2)),
		})
	}
	return rows, nil
}

// field returns the value at index i, or "" when the row is short.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func clean(v string) string {
	return strings.TrimSpace(strings.Trim(v, `"`))
}

// Store reads and writes reports at local paths or s3://bucket/key locations.
type Store struct {
	objects storage.Client
}

// NewStore creates a report store. objects may be nil when only local paths are used.
func NewStore(objects storage.Client) *Store {
	return &Store{objects: objects}
}

// IsRemote reports whether location points at object storage.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// Write persists rows to location.
func (s *Store) Write(ctx context.Context, location string, rows []reconcile.UnusedEntry) error {
	var buf bytes.Buffer
	if err := Encode(&buf, rows); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if !IsRemote(location) {
		if dir := filepath.Dir(location); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		if err := os.WriteFile(location, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report %s: %w", location, err)
		}
		return nil
	}

	bucket, key, err := s.remote(ctx, location)
	if err != nil {
		return err
	}
	_, err = s.objects.PutObject(ctx, bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", location, err)
	}
	return nil
}

// Read loads the rows stored at location.
func (s *Store) Read(ctx context.Context, location string) ([]reconcile.UnusedEntry, error) {
	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open report %s: %w", location, err)
		}
		defer f.Close()
		return Decode(f)
	}

	bucket, key, err := s.remote(ctx, location)
	if err != nil {
		return nil, err
	}
	obj, err := s.objects.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download report %s: %w", location, err)
	}
	defer obj.Close()
	return Decode(obj)
}

// remote validates an s3 location and the bucket behind it.
func (s *Store) remote(ctx context.Context, location string) (string, string, error) {
	if s.objects == nil {
		return "", "", errors.New("s3 report location requires storage configuration")
	}
	bucket, key, ok := storage.ParseLocation(location)
	if !ok {
		return "", "", fmt.Errorf("invalid report location %q, expected s3://bucket/key", location)
	}
	if err := storage.EnsureBucket(ctx, s.objects, bucket); err != nil {
		return "", "", err
	}
	return bucket, key, nil
}
