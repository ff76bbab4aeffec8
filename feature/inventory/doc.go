// Package inventory produces the asset records a scan works on.
//
// Two sources exist. Metadata reads a local export snapshot (metadata.json, an object
// of folder id -> asset[]) and flattens it. Remote pages through the live listing with
// skip/limit and a fixed page size of 100, stopping at the first short page.
//
// Both sources return each uid at most once.
package inventory
