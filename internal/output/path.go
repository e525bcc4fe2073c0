// Package output decides where a screenshot is written and in which format.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/websnap/internal/models"
)

// Host strips an http(s) scheme prefix from url and cuts it at the first '/',
// so "https://example.com/page?x=1" becomes "example.com".
func Host(url string) string {
	host := url
	if rest, ok := strings.CutPrefix(host, "https://"); ok {
		host = rest
	} else if rest, ok := strings.CutPrefix(host, "http://"); ok {
		host = rest
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

// DefaultFileName synthesizes "{host}-{width}x{height}.png".
func DefaultFileName(url string, width, height int) string {
	return fmt.Sprintf("%s-%dx%d.png", Host(url), width, height)
}

// ResolvePath returns the file the screenshot is written to. An existing
// directory gets a synthesized file name inside it, any other non-empty
// value is used as-is, and an empty value yields the synthesized name in the
// working directory.
func ResolvePath(out, url string, width, height int) string {
	if out == "" {
		return DefaultFileName(url, width, height)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, DefaultFileName(url, width, height))
	}
	return out
}

// FormatFromPath infers the image format from path's extension.
func FormatFromPath(path string) models.ImageFormat {
	return models.ParseImageFormat(filepath.Ext(path))
}
