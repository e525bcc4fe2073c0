package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/websnap/internal/common"
	"github.com/bobmcallan/websnap/internal/models"
)

// Config represents the application configuration.
// The default_* keys are fallbacks only: a zero value means unset and an
// explicit CLI flag always wins.
type Config struct {
	DefaultWidth   int                  `toml:"default_width" yaml:"default_width"`
	DefaultHeight  int                  `toml:"default_height" yaml:"default_height"`
	DefaultScale   float64              `toml:"default_scale" yaml:"default_scale"`
	DefaultWaitFor string               `toml:"default_wait_for" yaml:"default_wait_for"`
	Browser        BrowserConfig        `toml:"browser" yaml:"browser"`
	Logging        common.LoggingConfig `toml:"logging" yaml:"logging"`
}

// BrowserConfig contains browser launch settings.
type BrowserConfig struct {
	ExecPath       string `toml:"exec_path" yaml:"exec_path"`
	RemoteURL      string `toml:"remote_url" yaml:"remote_url"` // attach instead of launching
	Headless       bool   `toml:"headless" yaml:"headless"`
	NoSandbox      bool   `toml:"no_sandbox" yaml:"no_sandbox"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"` // 0 = unbounded
}

// Timeout returns the browser run deadline, or 0 when unbounded.
func (b BrowserConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, models.NewError(models.KindConfig, "read "+path, err)
		}

		if err := unmarshal(path, data, config); err != nil {
			return nil, models.NewError(models.KindConfig, "parse "+path,
				fmt.Errorf("file %d of %d: %w", i+1, len(paths), err))
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func unmarshal(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return toml.Unmarshal(data, config)
	}
}

// applyEnvOverrides applies WEBSNAP_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("WEBSNAP_DEFAULT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.DefaultWidth = n
		}
	}
	if v := os.Getenv("WEBSNAP_DEFAULT_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.DefaultHeight = n
		}
	}
	if v := os.Getenv("WEBSNAP_DEFAULT_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.DefaultScale = f
		}
	}
	if v := os.Getenv("WEBSNAP_EXEC_PATH"); v != "" {
		config.Browser.ExecPath = v
	}
	if v := os.Getenv("WEBSNAP_REMOTE_URL"); v != "" {
		config.Browser.RemoteURL = v
	}
	if v := os.Getenv("WEBSNAP_BROWSER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Browser.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("WEBSNAP_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides to the ambient settings.
func ApplyFlagOverrides(config *Config, verbose bool) {
	if !verbose {
		return
	}
	config.Logging.Level = "debug"
	if !slices.Contains(config.Logging.Outputs, common.OutputConsole) {
		config.Logging.Outputs = append(config.Logging.Outputs, common.OutputConsole)
	}
}
