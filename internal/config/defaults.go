package config

import "github.com/bobmcallan/websnap/internal/common"

// NewDefaultConfig creates a configuration with default values.
// Capture defaults are left unset here; Resolve falls back to the built-in
// values in models.
func NewDefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:       true,
			NoSandbox:      true,
			TimeoutSeconds: 30,
		},
		Logging: common.LoggingConfig{
			Level:   "warn",
			Outputs: []string{common.OutputConsole},
		},
	}
}
