// Package capture sequences one screenshot run: launch, open tab, wait,
// capture, write.
package capture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/websnap/internal/browser"
	"github.com/bobmcallan/websnap/internal/common"
	"github.com/bobmcallan/websnap/internal/config"
	"github.com/bobmcallan/websnap/internal/interfaces"
	"github.com/bobmcallan/websnap/internal/models"
	"github.com/bobmcallan/websnap/internal/output"
	"github.com/bobmcallan/websnap/internal/ui"
)

// LaunchFunc starts or attaches to a browser.
type LaunchFunc func(ctx context.Context, cfg config.BrowserConfig, logger *common.Logger) (interfaces.Browser, error)

// Options carries everything a run needs besides the request itself.
type Options struct {
	Browser  config.BrowserConfig
	Launch   LaunchFunc // defaults to browser.Launch
	Reporter ui.Reporter
	Logger   *common.Logger
}

// Result describes a saved screenshot.
type Result struct {
	Path   string
	Format models.ImageFormat
	Data   []byte
}

// DefaultLaunch wraps browser.Launch as a LaunchFunc.
func DefaultLaunch(ctx context.Context, cfg config.BrowserConfig, logger *common.Logger) (interfaces.Browser, error) {
	session, err := browser.Launch(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Run executes the pipeline for req. Every failure is a *models.Error and is
// terminal: nothing is retried and nothing is written before the last step.
// Presenting the failure is left to the caller.
func Run(ctx context.Context, req models.CaptureRequest, opts Options) (*Result, error) {
	if opts.Launch == nil {
		opts.Launch = DefaultLaunch
	}
	if opts.Reporter == nil {
		opts.Reporter = ui.Quiet{}
	}
	if opts.Logger == nil {
		opts.Logger = common.NewSilentLogger()
	}
	logger := opts.Logger.WithCorrelationId(uuid.NewString())
	start := time.Now()

	viewport := req.Viewport()
	path := output.ResolvePath(req.OutputPath, req.URL, req.Width, req.Height)
	format := output.FormatFromPath(path)

	logger.Info().
		Str("url", req.URL).
		Int("width", req.Width).
		Int("height", req.Height).
		Float64("scale", req.Scale).
		Str("wait_for", req.WaitFor).
		Str("output", path).
		Str("format", format.String()).
		Msg("capture started")

	opts.Reporter.Step("Open browser", "")
	b, err := opts.Launch(ctx, opts.Browser, logger)
	if err != nil {
		return nil, fail(logger, err)
	}
	defer b.Close()

	opts.Reporter.Step("Open new tab", "")
	tab, err := b.OpenTab(req.URL, viewport)
	if err != nil {
		return nil, fail(logger, err)
	}
	defer tab.Close()

	opts.Reporter.Step("Waiting for element", req.WaitFor)
	if err := tab.WaitFor(req.WaitFor); err != nil {
		return nil, fail(logger, err)
	}

	opts.Reporter.Step("Capturing screenshot", "")
	data, err := tab.Capture(format, viewport)
	if err != nil {
		return nil, fail(logger, err)
	}

	opts.Reporter.Step("Writing screenshot to", path)
	if err := output.Write(path, data); err != nil {
		return nil, fail(logger, err)
	}

	opts.Reporter.Done(path)
	logger.Info().
		Str("output", path).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("capture finished")

	return &Result{Path: path, Format: format, Data: data}, nil
}

// fail records err for -v runs. The caller presents the error itself, so it
// stays below the default warn level.
func fail(logger *common.Logger, err error) error {
	logger.Debug().Str("kind", string(models.KindOf(err))).Err(err).Msg("capture failed")
	return err
}
