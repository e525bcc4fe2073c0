package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"

	"github.com/bobmcallan/websnap/internal/config"
	"github.com/bobmcallan/websnap/internal/models"
)

func TestScreenshotFormat(t *testing.T) {
	tests := []struct {
		in   models.ImageFormat
		want page.CaptureScreenshotFormat
	}{
		{models.FormatPNG, page.CaptureScreenshotFormatPng},
		{models.FormatJPEG, page.CaptureScreenshotFormatJpeg},
		{models.FormatWEBP, page.CaptureScreenshotFormatWebp},
	}
	for _, tt := range tests {
		if got := screenshotFormat(tt.in); got != tt.want {
			t.Errorf("screenshotFormat(%s): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestResolveExecPath_Configured(t *testing.T) {
	if got := ResolveExecPath("/custom/chrome"); got != "/custom/chrome" {
		t.Errorf("expected configured path, got %s", got)
	}
}

func TestResolveExecPath_ChromeBin(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "chrome")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHROME_BIN", bin)

	if got := ResolveExecPath(""); got != bin {
		t.Errorf("expected CHROME_BIN path %s, got %s", bin, got)
	}
}

func TestResolveExecPath_ChromeBinMissingFallsThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	t.Setenv("CHROME_BIN", missing)

	if got := ResolveExecPath(""); got == missing {
		t.Errorf("expected missing CHROME_BIN to be ignored, got %s", got)
	}
}

func TestAllocatorOptions(t *testing.T) {
	base := len(allocatorOptions(config.BrowserConfig{ExecPath: "/x"}))
	sandboxed := len(allocatorOptions(config.BrowserConfig{ExecPath: "/x", NoSandbox: true}))
	if sandboxed != base+1 {
		t.Errorf("expected no-sandbox to add one option, got %d vs %d", sandboxed, base)
	}
}

func TestJSErrorCollector(t *testing.T) {
	c := &JSErrorCollector{}

	c.handle(&runtime.EventExceptionThrown{
		ExceptionDetails: &runtime.ExceptionDetails{
			Text:      "Uncaught",
			Exception: &runtime.RemoteObject{Description: "ReferenceError: foo is not defined"},
		},
	})
	c.handle(&runtime.EventConsoleAPICalled{
		Type: runtime.APITypeError,
		Args: []*runtime.RemoteObject{{Value: []byte(`"boom"`)}, {Description: "Error: at line 3"}},
	})
	c.handle(&runtime.EventConsoleAPICalled{
		Type: runtime.APITypeLog,
		Args: []*runtime.RemoteObject{{Value: []byte(`"ignored"`)}},
	})

	errs, dropped := c.Drain()
	if dropped != 0 {
		t.Errorf("expected nothing dropped, got %d", dropped)
	}
	want := []PageError{
		{Source: "exception", Text: "ReferenceError: foo is not defined"},
		{Source: "console", Text: "boom Error: at line 3"},
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for i := range want {
		if errs[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], errs[i])
		}
	}

	if errs, _ := c.Drain(); len(errs) != 0 {
		t.Errorf("expected Drain to reset, got %v", errs)
	}
}

func TestJSErrorCollector_Cap(t *testing.T) {
	c := &JSErrorCollector{}
	for i := 0; i < maxPageErrors+3; i++ {
		c.handle(&runtime.EventExceptionThrown{ExceptionDetails: &runtime.ExceptionDetails{Text: "x"}})
	}

	errs, dropped := c.Drain()
	if len(errs) != maxPageErrors {
		t.Errorf("expected %d kept, got %d", maxPageErrors, len(errs))
	}
	if dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", dropped)
	}
}
