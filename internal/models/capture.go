package models

import "strings"

// Built-in capture defaults, used when neither the CLI nor the config file
// supplies a value.
const (
	DefaultWidth   = 1920
	DefaultHeight  = 1080
	DefaultScale   = 1.0
	DefaultWaitFor = "body"
)

// CaptureRequest describes a single screenshot invocation.
type CaptureRequest struct {
	URL        string  `json:"url"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale"`
	WaitFor    string  `json:"wait_for"`
	OutputPath string  `json:"output_path"`
}

// Viewport returns the logical rendering area for the request. Width and
// height are divided by the scale factor so the captured image keeps the
// requested physical pixel size.
func (r CaptureRequest) Viewport() Viewport {
	scale := r.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	return Viewport{
		X:      0,
		Y:      0,
		Width:  float64(r.Width) / scale,
		Height: float64(r.Height) / scale,
		Scale:  scale,
	}
}

// Viewport is the clip rectangle handed to the browser when capturing.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// ImageFormat is the encoding requested from the browser.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	FormatWEBP
)

// String returns the lower-case format name used by the DevTools protocol.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatWEBP:
		return "webp"
	default:
		return "png"
	}
}

// Extension returns the canonical file extension, including the dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWEBP:
		return ".webp"
	default:
		return ".png"
	}
}

// MIMEType returns the media type of the encoded image.
func (f ImageFormat) MIMEType() string {
	return "image/" + f.String()
}

// ParseImageFormat maps an extension (with or without the leading dot) to a
// format. Unknown or empty extensions yield PNG.
func ParseImageFormat(ext string) ImageFormat {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "webp":
		return FormatWEBP
	default:
		return FormatPNG
	}
}
