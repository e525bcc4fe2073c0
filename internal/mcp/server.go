// Package mcp exposes the capture pipeline as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/websnap/internal/capture"
	"github.com/bobmcallan/websnap/internal/common"
	"github.com/bobmcallan/websnap/internal/config"
)

// Server serves capture_screenshot and get_version over stdio.
type Server struct {
	cfg    *config.Config
	logger *common.Logger
	launch capture.LaunchFunc
	mcp    *server.MCPServer
}

// NewServer registers the websnap tools. A nil launch uses capture.DefaultLaunch.
func NewServer(cfg *config.Config, logger *common.Logger, launch capture.LaunchFunc) *Server {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if launch == nil {
		launch = capture.DefaultLaunch
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		launch: launch,
		mcp: server.NewMCPServer(
			"websnap",
			config.Version,
			server.WithToolCapabilities(true),
		),
	}

	s.mcp.AddTool(CaptureTool(), s.handleCapture)
	s.mcp.AddTool(VersionTool(), VersionToolHandler())

	return s
}

// ServeStdio blocks serving JSON-RPC on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// CaptureTool returns the mcp.Tool definition for capture_screenshot.
func CaptureTool() mcp.Tool {
	return mcp.NewTool("capture_screenshot",
		mcp.WithDescription("Open a URL in headless Chrome, wait for a DOM element and save a screenshot. Returns the saved path and the image."),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL of the page to capture")),
		mcp.WithNumber("width", mcp.Description("Viewport width in pixels (default: config default_width or 1920)")),
		mcp.WithNumber("height", mcp.Description("Viewport height in pixels (default: config default_height or 1080)")),
		mcp.WithNumber("scale", mcp.Description("Device scale factor (default: config default_scale or 1.0)")),
		mcp.WithString("wait_for", mcp.Description("Query selector to wait for before capturing (default: body)")),
		mcp.WithString("output", mcp.Description("Output file or directory; the extension picks png, jpeg or webp")),
	)
}

func (s *Server) handleCapture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return errorResult("Error: url parameter is required"), nil
	}

	flags := config.Flags{
		URL:     url,
		Output:  request.GetString("output", ""),
		WaitFor: optionalString(request, "wait_for"),
	}
	if flags.Width, err = optionalInt(request, "width"); err != nil {
		return errorResult("Error: " + err.Error()), nil
	}
	if flags.Height, err = optionalInt(request, "height"); err != nil {
		return errorResult("Error: " + err.Error()), nil
	}
	if flags.Scale, err = optionalFloat(request, "scale"); err != nil {
		return errorResult("Error: " + err.Error()), nil
	}

	req, err := config.Resolve(s.cfg, flags)
	if err != nil {
		return errorResult(fmt.Sprintf("Error: %v", err)), nil
	}

	res, err := capture.Run(ctx, req, capture.Options{
		Browser: s.cfg.Browser,
		Launch:  s.launch,
		Logger:  s.logger,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Error: %v", err)), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf("Saved %s screenshot of %s to %s (%d bytes)", res.Format, req.URL, res.Path, len(res.Data))),
			mcp.NewImageContent(base64.StdEncoding.EncodeToString(res.Data), res.Format.MIMEType()),
		},
	}, nil
}
