// Package report reads and writes the flat unused-asset report.
//
// A report is a CSV file with the fixed columns uid, filename and parent_uid. Rows with
// an empty uid and filename stand for empty folders. Reports live either on the local
// filesystem or at an s3://bucket/key location served by core/storage.
package report
