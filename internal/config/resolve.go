package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/websnap/internal/models"
)

// Flags carries the capture values given on the command line. Nil pointers
// mean the flag was not set, so the config file or built-in default applies.
type Flags struct {
	URL     string
	Output  string
	Width   *int
	Height  *int
	Scale   *float64
	WaitFor *string
}

// Resolve merges flags, config and built-in defaults into a CaptureRequest.
// Precedence is flag > config > default for every capture value.
func Resolve(cfg *Config, flags Flags) (models.CaptureRequest, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	req := models.CaptureRequest{
		URL:        strings.TrimSpace(flags.URL),
		Width:      pickInt(flags.Width, cfg.DefaultWidth, models.DefaultWidth),
		Height:     pickInt(flags.Height, cfg.DefaultHeight, models.DefaultHeight),
		Scale:      pickFloat(flags.Scale, cfg.DefaultScale, models.DefaultScale),
		WaitFor:    pickString(flags.WaitFor, cfg.DefaultWaitFor, models.DefaultWaitFor),
		OutputPath: flags.Output,
	}

	if err := validate(req); err != nil {
		return models.CaptureRequest{}, models.NewError(models.KindConfig, "resolve request", err)
	}
	return req, nil
}

func validate(req models.CaptureRequest) error {
	var issues []string
	if req.URL == "" {
		issues = append(issues, "url is required")
	}
	if req.Width <= 0 {
		issues = append(issues, fmt.Sprintf("width must be positive, got %d", req.Width))
	}
	if req.Height <= 0 {
		issues = append(issues, fmt.Sprintf("height must be positive, got %d", req.Height))
	}
	if req.Scale <= 0 {
		issues = append(issues, fmt.Sprintf("scale must be positive, got %g", req.Scale))
	}
	if strings.TrimSpace(req.WaitFor) == "" {
		issues = append(issues, "wait selector must not be empty")
	}
	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}

func pickInt(flag *int, configured, fallback int) int {
	if flag != nil {
		return *flag
	}
	if configured != 0 {
		return configured
	}
	return fallback
}

func pickFloat(flag *float64, configured, fallback float64) float64 {
	if flag != nil {
		return *flag
	}
	if configured != 0 {
		return configured
	}
	return fallback
}

func pickString(flag *string, configured, fallback string) string {
	if flag != nil {
		return *flag
	}
	if configured != "" {
		return configured
	}
	return fallback
}
