package browser

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bobmcallan/websnap/internal/config"
	"github.com/bobmcallan/websnap/internal/models"
	"github.com/bobmcallan/websnap/internal/testutil"
)

const testPage = `data:text/html,<html><body><h1 id="title">websnap</h1></body></html>`

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.StopChrome()
	os.Exit(code)
}

func remoteConfig(t *testing.T) config.BrowserConfig {
	return config.BrowserConfig{
		RemoteURL:      testutil.StartChrome(t),
		TimeoutSeconds: 20,
	}
}

func TestSession_CapturePNG(t *testing.T) {
	session, err := Launch(context.Background(), remoteConfig(t), nil)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer session.Close()

	req := models.CaptureRequest{Width: 800, Height: 600, Scale: 1}
	vp := req.Viewport()

	tab, err := session.OpenTab(testPage, vp)
	if err != nil {
		t.Fatalf("OpenTab failed: %v", err)
	}
	defer tab.Close()

	if err := tab.WaitFor("#title"); err != nil {
		t.Fatalf("WaitFor failed: %v", err)
	}

	data, err := tab.Capture(models.FormatPNG, vp)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if !bytes.HasPrefix(data, testutil.PNGMagic) {
		t.Error("expected PNG magic bytes")
	}
}

func TestSession_CaptureJPEG(t *testing.T) {
	session, err := Launch(context.Background(), remoteConfig(t), nil)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer session.Close()

	vp := models.CaptureRequest{Width: 640, Height: 480, Scale: 2}.Viewport()
	tab, err := session.OpenTab(testPage, vp)
	if err != nil {
		t.Fatalf("OpenTab failed: %v", err)
	}
	defer tab.Close()

	data, err := tab.Capture(models.FormatJPEG, vp)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	// JPEG SOI marker
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("expected JPEG SOI marker")
	}
}

func TestSession_WaitForTimeout(t *testing.T) {
	cfg := remoteConfig(t)
	cfg.TimeoutSeconds = 3

	session, err := Launch(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer session.Close()

	vp := models.CaptureRequest{Width: 800, Height: 600, Scale: 1}.Viewport()
	tab, err := session.OpenTab(testPage, vp)
	if err != nil {
		t.Fatalf("OpenTab failed: %v", err)
	}
	defer tab.Close()

	err = tab.WaitFor("#never-rendered")
	if !errors.Is(err, models.ErrElementWait) {
		t.Errorf("expected element wait error, got %v", err)
	}
}

func TestLaunch_BadExecPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser launch test in short mode")
	}
	cfg := config.BrowserConfig{ExecPath: "/nonexistent/chrome", Headless: true, TimeoutSeconds: 5}

	_, err := Launch(context.Background(), cfg, nil)
	if !errors.Is(err, models.ErrBrowserLaunch) {
		t.Errorf("expected browser launch error, got %v", err)
	}
}
