package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// textResult creates an MCP text result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// present reports whether the caller sent key with a non-null value.
func present(request mcp.CallToolRequest, key string) bool {
	v, ok := request.GetArguments()[key]
	return ok && v != nil
}

// optionalInt returns the integer argument key, or nil when the caller did
// not send it. Numbers and numeric strings are accepted; anything else is an
// error rather than a silent fallback to config.
func optionalInt(request mcp.CallToolRequest, key string) (*int, error) {
	if !present(request, key) {
		return nil, nil
	}
	n, err := request.RequireInt(key)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &n, nil
}

func optionalFloat(request mcp.CallToolRequest, key string) (*float64, error) {
	if !present(request, key) {
		return nil, nil
	}
	f, err := request.RequireFloat(key)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &f, nil
}

func optionalString(request mcp.CallToolRequest, key string) *string {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
