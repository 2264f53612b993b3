package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/gearrs/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "gearrs.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultKey is the default object key for published documents.
	DefaultKey = "index.html"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "gearrs"

	// DefaultShutdownTimeout bounds graceful shutdown of the preview server.
	DefaultShutdownTimeout = 5 * time.Second
)

// Config represents the complete gearrs.json configuration.
type Config struct {
	// Document describes the page rendered by the CLI.
	Document DocumentConfig `json:"document"`

	// Server contains preview server configuration.
	Server ServerConfig `json:"server"`

	// Publish contains S3 publishing configuration.
	Publish PublishConfig `json:"publish"`

	// Metrics contains metrics and tracing configuration.
	Metrics MetricsConfig `json:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DocumentConfig describes the rendered page.
type DocumentConfig struct {
	Title string `json:"title,omitempty"`
	Lang  string `json:"lang,omitempty"`
	Text  string `json:"text,omitempty"`
}

// ServerConfig contains preview server configuration.
type ServerConfig struct {
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	LiveReload bool   `json:"liveReload,omitempty"`

	// ShutdownTimeout is a Go duration string, e.g. "5s".
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// PublishConfig contains S3 publishing configuration.
type PublishConfig struct {
	Bucket   string `json:"bucket,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Key      string `json:"key,omitempty"`

	// PathStyle forces path-style addressing, needed by most S3-compatible stores.
	PathStyle bool `json:"pathStyle,omitempty"`

	// Gzip uploads the document gzip-compressed.
	Gzip bool `json:"gzip,omitempty"`
}

// MetricsConfig contains metrics and tracing configuration.
type MetricsConfig struct {
	Enabled    bool   `json:"enabled"`
	Namespace  string `json:"namespace,omitempty"`
	TracerName string `json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Document: DocumentConfig{
			Title: "Gearrs",
			Lang:  "en",
			Text:  "Hello world",
		},
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			LiveReload:      false,
			ShutdownTimeout: DefaultShutdownTimeout.String(),
		},
		Publish: PublishConfig{
			Region: "us-east-1",
			Key:    DefaultKey,
		},
		Metrics: MetricsConfig{
			Enabled:    true,
			Namespace:  DefaultNamespace,
			TracerName: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for gearrs.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, falling back to defaults when the directory has
// no gearrs.json. Environment overrides apply in both cases.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, errors.New("E121")) {
		return nil, err
	}
	cfg = New()
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyEnv(os.Getenv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Publish.Key == "" {
		c.Publish.Key = d.Publish.Key
	}
	if c.Publish.Region == "" {
		c.Publish.Region = d.Publish.Region
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.TracerName == "" {
		c.Metrics.TracerName = d.Metrics.TracerName
	}
}

// applyEnv overrides fields from GEARRS_* environment variables.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("GEARRS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := getenv("GEARRS_BUCKET"); v != "" {
		c.Publish.Bucket = v
	}
	if v := getenv("GEARRS_REGION"); v != "" {
		c.Publish.Region = v
	}
	if v := getenv("GEARRS_ENDPOINT"); v != "" {
		c.Publish.Endpoint = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E120").
			WithDetail(fmt.Sprintf("server.port %d is out of range", c.Server.Port)).
			WithSuggestion("Use a port between 1 and 65535")
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return errors.New("E120").
			WithDetail("server.shutdownTimeout: " + err.Error()).
			WithSuggestion(`Use a Go duration such as "5s"`)
	}
	if strings.HasPrefix(c.Publish.Key, "/") {
		return errors.New("E120").
			WithDetail("publish.key must be relative, got " + c.Publish.Key)
	}
	return nil
}

// Address returns the host:port the preview server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ShutdownTimeout parses Server.ShutdownTimeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	if c.Server.ShutdownTimeout == "" {
		return DefaultShutdownTimeout, nil
	}
	return time.ParseDuration(c.Server.ShutdownTimeout)
}

// ObjectKey returns the object key for the published document,
// joining Publish.Prefix and Publish.Key.
func (c *Config) ObjectKey() string {
	key := c.Publish.Key
	if key == "" {
		key = DefaultKey
	}
	if c.Publish.Prefix == "" {
		return key
	}
	return path.Join(c.Publish.Prefix, key)
}

// Exists checks if a gearrs.json file exists in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
