package interfaces

import "github.com/bobmcallan/websnap/internal/models"

// Browser is a running browser instance that can open tabs.
// Implementations can be swapped (local launch, remote attach, fakes in tests).
type Browser interface {
	OpenTab(url string, viewport models.Viewport) (Tab, error)
	Close()
}

// Tab is a single page target navigated to the capture URL.
type Tab interface {
	WaitFor(selector string) error
	Capture(format models.ImageFormat, viewport models.Viewport) ([]byte, error)
	Close()
}
