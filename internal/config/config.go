package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vrender/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vrender.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// DefaultTimeout is the default per-render timeout.
	DefaultTimeout = "5s"

	// DefaultMetricsPath is the default metrics endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vrender"

	// DefaultRegion is the default S3 region.
	DefaultRegion = "us-east-1"
)

// Environment variables that override file values.
const (
	EnvPort     = "VRENDER_PORT"
	EnvStrict   = "VRENDER_STRICT"
	EnvS3Bucket = "VRENDER_S3_BUCKET"
)

// Config represents the complete vrender.json configuration.
type Config struct {
	// Name is the site name.
	Name string `json:"name,omitempty"`

	// Render contains renderer settings.
	Render RenderConfig `json:"render"`

	// Server contains preview server settings.
	Server ServerConfig `json:"server"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Pages maps URL routes to tree documents, relative to the config file.
	Pages map[string]string `json:"pages,omitempty"`

	// Export contains static export settings.
	Export ExportConfig `json:"export"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// Strict rejects invalid children and conflicting children props.
	Strict bool `json:"strict,omitempty"`

	// EscapeAttributes HTML-escapes attribute values.
	EscapeAttributes bool `json:"escapeAttributes,omitempty"`

	// Timeout bounds a single render (e.g. "5s").
	Timeout string `json:"timeout,omitempty"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics on Path.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`

	// Path is the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Output is the export directory.
	Output string `json:"output,omitempty"`

	// Bucket is the S3 bucket. Empty exports to Output.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every S3 key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the S3 region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Pages: map[string]string{},
		Export: ExportConfig{
			Output: DefaultOutput,
			Region: DefaultRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vrender.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path, then
// applies defaults and environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C141").
				WithDetail("No vrender.json found in " + filepath.Dir(path)).
				WithSuggestion("Create vrender.json or pass --config")
		}
		return nil, errors.New("C120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C120").
			WithDetail("Failed to parse vrender.json: " + err.Error()).
			WithSuggestion("Check that vrender.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
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
		return errors.New("C120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Render.Timeout == "" {
		c.Render.Timeout = DefaultTimeout
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Pages == nil {
		c.Pages = map[string]string{}
	}

	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Export.Region == "" {
		c.Export.Region = DefaultRegion
	}
}

// ApplyEnv applies VRENDER_* overrides using lookup, which has the
// signature of os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("C121").
				WithDetailf("%s=%q is not a port number", EnvPort, v)
		}
		c.Server.Port = port
	}

	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("C121").
				WithDetailf("%s=%q is not a boolean", EnvStrict, v)
		}
		c.Render.Strict = strict
	}

	if v, ok := lookup(EnvS3Bucket); ok && v != "" {
		c.Export.Bucket = v
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("C121").
			WithDetail("Port must be between 0 and 65535")
	}

	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil || d < 0 {
			return errors.New("C121").
				WithDetailf("render.timeout %q is not a valid duration", c.Render.Timeout).
				WithExample(`"render": {"timeout": "5s"}`)
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("C121").
			WithDetailf("metrics.path %q must start with /", c.Metrics.Path)
	}

	for _, route := range c.Routes() {
		if !strings.HasPrefix(route, "/") {
			return errors.New("C121").
				WithDetailf("page route %q must start with /", route)
		}
		if c.Pages[route] == "" {
			return errors.New("C121").
				WithDetailf("page route %q has no document", route)
		}
	}

	return nil
}

// Address returns the listen address for the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// RenderTimeout returns the per-render timeout. Zero means no timeout.
func (c *Config) RenderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Routes returns the configured page routes, sorted.
func (c *Config) Routes() []string {
	routes := make([]string, 0, len(c.Pages))
	for route := range c.Pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// PagePath returns the absolute path to the document for route.
// Returns false if the route is not configured.
func (c *Config) PagePath(route string) (string, bool) {
	path, ok := c.Pages[route]
	if !ok || path == "" {
		return "", false
	}
	return c.resolve(path), true
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Export.Output)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vrender.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C141").
				WithDetail("No vrender.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has a vrender.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
