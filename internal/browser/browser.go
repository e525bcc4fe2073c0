// Package browser drives a headless Chrome through chromedp: launch or
// attach, open a sized tab, wait for a selector and capture it.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/bobmcallan/websnap/internal/common"
	"github.com/bobmcallan/websnap/internal/config"
	"github.com/bobmcallan/websnap/internal/interfaces"
	"github.com/bobmcallan/websnap/internal/models"
)

// Session is a running browser. Closing it kills a launched browser or
// detaches from a remote one.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *common.Logger
}

var _ interfaces.Browser = (*Session)(nil)

// Launch starts Chrome, or attaches to cfg.RemoteURL when set. The whole
// session is bounded by cfg.Timeout when it is non-zero.
func Launch(ctx context.Context, cfg config.BrowserConfig, logger *common.Logger) (*Session, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.RemoteURL != "" {
		logger.Debug().Str("remote_url", cfg.RemoteURL).Msg("attaching to remote browser")
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
	} else {
		opts := allocatorOptions(cfg)
		logger.Debug().Bool("headless", cfg.Headless).Int("flags", len(opts)).Msg("launching browser")
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			logger.Debug().Str("source", "chromedp").Msg(fmt.Sprintf(format, args...))
		}),
	)

	timeoutCancel := context.CancelFunc(func() {})
	if timeout := cfg.Timeout(); timeout > 0 {
		browserCtx, timeoutCancel = context.WithTimeout(browserCtx, timeout)
	}

	cancel := func() {
		timeoutCancel()
		browserCancel()
		allocCancel()
	}

	// An empty Run starts the browser and its first target.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, models.NewError(models.KindBrowserLaunch, "start browser", err)
	}

	return &Session{ctx: browserCtx, cancel: cancel, logger: logger}, nil
}

// OpenTab creates a new target sized to the viewport and navigates it to url.
func (s *Session) OpenTab(url string, viewport models.Viewport) (interfaces.Tab, error) {
	ctx, cancel := chromedp.NewContext(s.ctx)
	collector := NewJSErrorCollector(ctx)

	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(viewport.Width), int64(viewport.Height)),
		chromedp.Navigate(url),
	)
	if err != nil {
		cancel()
		if isTimeout(s.ctx, err) {
			return nil, models.NewError(models.KindCapture, "navigate to "+url, fmt.Errorf("navigation timed out: %w", err))
		}
		return nil, models.NewError(models.KindCapture, "navigate to "+url, err)
	}

	return &Tab{ctx: ctx, cancel: cancel, errors: collector, logger: s.logger}, nil
}

// Close releases the browser.
func (s *Session) Close() {
	s.cancel()
}

// Tab is a navigated page target.
type Tab struct {
	ctx    context.Context
	cancel context.CancelFunc
	errors *JSErrorCollector
	logger *common.Logger
}

var _ interfaces.Tab = (*Tab)(nil)

// WaitFor blocks until an element matching selector is in the DOM. Polling
// belongs to chromedp; the session deadline is the only bound.
func (t *Tab) WaitFor(selector string) error {
	err := chromedp.Run(t.ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
	t.logPageErrors()
	if err != nil {
		return models.NewError(models.KindElementWait, fmt.Sprintf("wait for %q", selector), err)
	}
	return nil
}

// Capture returns the encoded screenshot of the viewport clip.
func (t *Tab) Capture(format models.ImageFormat, viewport models.Viewport) ([]byte, error) {
	var buf []byte
	err := chromedp.Run(t.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(screenshotFormat(format)).
			WithClip(&page.Viewport{
				X:      viewport.X,
				Y:      viewport.Y,
				Width:  viewport.Width,
				Height: viewport.Height,
				Scale:  viewport.Scale,
			}).
			WithFromSurface(true).
			Do(ctx)
		return err
	}))
	t.logPageErrors()
	if err != nil {
		return nil, models.NewError(models.KindCapture, "capture "+format.String(), err)
	}
	return buf, nil
}

// Close closes the target.
func (t *Tab) Close() {
	t.cancel()
}

func (t *Tab) logPageErrors() {
	errs, dropped := t.errors.Drain()
	for _, e := range errs {
		t.logger.Debug().Str("source", e.Source).Str("text", e.Text).Msg("page error")
	}
	if dropped > 0 {
		t.logger.Debug().Int("dropped", dropped).Msg("page errors over limit")
	}
}

func screenshotFormat(format models.ImageFormat) page.CaptureScreenshotFormat {
	switch format {
	case models.FormatJPEG:
		return page.CaptureScreenshotFormatJpeg
	case models.FormatWEBP:
		return page.CaptureScreenshotFormatWebp
	default:
		return page.CaptureScreenshotFormatPng
	}
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func allocatorOptions(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if execPath := ResolveExecPath(cfg.ExecPath); execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	return opts
}

// ResolveExecPath picks the Chrome binary: the configured path, then
// CHROME_BIN, then well-known install locations. An empty result lets
// chromedp search PATH itself.
func ResolveExecPath(configured string) string {
	if configured != "" {
		return configured
	}
	if envPath := strings.TrimSpace(os.Getenv("CHROME_BIN")); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	candidates := []string{
		"/opt/google/chrome/chrome",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
		"/headless-shell/headless-shell",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
