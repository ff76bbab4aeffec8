// Package storage provides access to S3-compatible object storage for reports.
//
// It wraps the MinIO Go client so that scan reports can be written to, and cleanup
// runs can read from, an s3://bucket/key location instead of a local file. Both AWS S3
// and self-hosted MinIO endpoints are supported.
//
// # Client Interface
//
// The Client interface abstracts the provider, making it easy to mock storage
// interactions in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "reports")
package storage
