package metrics

import (
	"context"
)

// Name is a type-safe metric name.
type Name string

const (
	AssetsChecked  Name = "janitor.assets.checked"
	AssetsUnused   Name = "janitor.assets.unused"
	ReferenceError Name = "janitor.references.errors"
	FoldersEmpty   Name = "janitor.folders.empty"
	AssetsDeleted  Name = "janitor.assets.deleted"
	FoldersDeleted Name = "janitor.folders.deleted"
	DeleteFailures Name = "janitor.delete.failures"
)

// Recorder collects run counters.
type Recorder interface {
	Add(metric Name, n int64, attrs map[string]string)
	Shutdown(ctx context.Context) error
}

// Config holds configuration for metrics export.
type Config struct {
	// Enabled turns on OpenTelemetry export.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the OTLP/gRPC collector address.
	Endpoint string `mapstructure:"endpoint" default:"localhost:4317"`
}

// New returns an OpenTelemetry recorder when enabled, a noop recorder otherwise.
func New(ctx context.Context, cfg Config) (Recorder, error) {
	if !cfg.Enabled {
		return NewNoop(), nil
	}
	return NewOtel(ctx, cfg.Endpoint)
}
