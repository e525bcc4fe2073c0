// Package testutil starts throwaway Chrome instances for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ChromeImage is the headless Chrome image used for integration tests.
// Override with WEBSNAP_TEST_CHROME_IMAGE.
const ChromeImage = "chromedp/headless-shell:latest"

var (
	chromeOnce sync.Once
	chromeURL  string
	chromeErr  error
	chromeCtr  testcontainers.Container
)

// StartChrome returns the DevTools URL of a shared headless-shell container,
// started once per test process. The test is skipped under -short or when
// Docker is unavailable. Callers in a package should invoke StopChrome from
// TestMain.
func StartChrome(t testing.TB) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser integration test in short mode")
	}

	chromeOnce.Do(func() {
		chromeURL, chromeErr = startChrome()
	})
	if chromeErr != nil {
		t.Skipf("headless chrome unavailable: %v", chromeErr)
	}
	return chromeURL
}

// StopChrome terminates the shared container, if one was started.
func StopChrome() {
	if chromeCtr == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	chromeCtr.Terminate(ctx)
}

func startChrome() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	image := ChromeImage
	if v := os.Getenv("WEBSNAP_TEST_CHROME_IMAGE"); v != "" {
		image = v
	}

	ctr, err := testcontainers.Run(ctx, image,
		testcontainers.WithExposedPorts("9222/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/json/version").WithPort("9222/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("start %s: %w", image, err)
	}
	chromeCtr = ctr

	mappedPort, err := ctr.MappedPort(ctx, "9222/tcp")
	if err != nil {
		return "", fmt.Errorf("get chrome mapped port: %w", err)
	}
	host, err := ctr.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get chrome host: %w", err)
	}

	return fmt.Sprintf("ws://%s:%s", host, mappedPort.Port()), nil
}

// PNGMagic is the 8-byte PNG file signature.
var PNGMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
