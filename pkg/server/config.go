package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/gearrs/pkg/document"
)

// Source produces the page served at "/". It is called once per request,
// so every response renders a fresh tree.
type Source func(ctx context.Context) (*document.Page, error)

// StaticSource returns a Source that always serves page.
func StaticSource(page *document.Page) Source {
	return func(context.Context) (*document.Page, error) {
		return page, nil
	}
}

// Config configures the preview server.
type Config struct {
	// Address is the listen address (default ":3000").
	Address string

	// Source produces the served page. Required.
	Source Source

	// LiveReload injects the live reload script and serves LivePath.
	LiveReload bool

	// Registry receives the HTTP metrics and is served at /metrics.
	// Metrics are disabled when nil.
	Registry *prometheus.Registry

	// Namespace is the metrics namespace (default "gearrs").
	Namespace string

	// Subsystem, ConstLabels and Buckets are passed to the metrics
	// middleware. Empty values keep its defaults.
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64

	// TracerName is the OpenTelemetry tracer name (default "gearrs").
	TracerName string

	// Logger defaults to slog.Default() with component=server.
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server (default 10s).
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a Config with defaults and no Source.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		Namespace:         "gearrs",
		TracerName:        "gearrs",
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if c.TracerName == "" {
		c.TracerName = d.TracerName
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "server")
	}
	return c
}
