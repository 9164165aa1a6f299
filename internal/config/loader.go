package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"hfocr/internal/common/fsutil"
	"hfocr/pkg/types"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr              string           `json:"addr" yaml:"addr" toml:"addr"`
	BaseURL           string           `json:"base_url" yaml:"base_url" toml:"base_url"`
	StatusURL         string           `json:"status_url" yaml:"status_url" toml:"status_url"`
	WireFormat        string           `json:"wire_format" yaml:"wire_format" toml:"wire_format"`
	TimeoutSeconds    int              `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	DisableWarmup     bool             `json:"disable_warmup" yaml:"disable_warmup" toml:"disable_warmup"`
	Pdftoppm          string           `json:"pdftoppm" yaml:"pdftoppm" toml:"pdftoppm"`
	TempDir           string           `json:"temp_dir" yaml:"temp_dir" toml:"temp_dir"`
	MaxUploadMB       int              `json:"max_upload_mb" yaml:"max_upload_mb" toml:"max_upload_mb"`
	SessionTTLMinutes int              `json:"session_ttl_minutes" yaml:"session_ttl_minutes" toml:"session_ttl_minutes"`
	LogLevel          string           `json:"log_level" yaml:"log_level" toml:"log_level"`
	Endpoints         []types.Endpoint `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
	CORS              CORS             `json:"cors" yaml:"cors" toml:"cors"`
}

// CORS configures the optional cross-origin middleware.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Defaults applied by WithDefaults.
const (
	DefaultAddr              = ":8080"
	DefaultStatusURL         = "https://api-inference.huggingface.co"
	DefaultWireFormat        = "raw"
	DefaultTimeoutSeconds    = 60
	DefaultPdftoppm          = "pdftoppm"
	DefaultMaxUploadMB       = 32
	DefaultSessionTTLMinutes = 30
	DefaultLogLevel          = "info"
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading '~' is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(p), err)
	}
	return cfg, nil
}

// FromEnv overlays HFOCR_* environment variables onto cfg.
func FromEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Addr, "HFOCR_ADDR")
	set(&cfg.BaseURL, "HFOCR_BASE_URL")
	set(&cfg.StatusURL, "HFOCR_STATUS_URL")
	set(&cfg.WireFormat, "HFOCR_WIRE_FORMAT")
	set(&cfg.Pdftoppm, "HFOCR_PDFTOPPM")
	set(&cfg.TempDir, "HFOCR_TEMP_DIR")
	set(&cfg.LogLevel, "HFOCR_LOG_LEVEL")
	return cfg
}

// WithDefaults returns cfg with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.StatusURL == "" {
		c.StatusURL = DefaultStatusURL
	}
	if c.WireFormat == "" {
		c.WireFormat = DefaultWireFormat
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Pdftoppm == "" {
		c.Pdftoppm = DefaultPdftoppm
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = DefaultMaxUploadMB
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = DefaultSessionTTLMinutes
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Validate reports settings that cannot be used as given.
func (c Config) Validate() error {
	switch c.WireFormat {
	case "", "raw", "multipart":
	default:
		return fmt.Errorf("wire_format must be raw or multipart, got %q", c.WireFormat)
	}
	return nil
}
