// Package scan finds unused assets and empty folders and writes them to a report.
//
// ScanLocal works on a local export folder (metadata.json plus an optional
// folders.json) and answers folder emptiness from the snapshot. ScanRemote lists the
// live stack and probes folders with the API. Both check references against the live
// API with a bounded number of requests in flight.
package scan
