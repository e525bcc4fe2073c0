package browser

import (
	"context"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// maxPageErrors bounds how many page errors a tab keeps.
const maxPageErrors = 50

// PageError is a script failure reported by the page.
type PageError struct {
	Source string // "exception" or "console"
	Text   string
}

// JSErrorCollector records uncaught exceptions and console.error calls
// raised by a tab. It is only used for debug logging; page errors never fail
// a capture.
type JSErrorCollector struct {
	mu      sync.Mutex
	errors  []PageError
	dropped int
}

// NewJSErrorCollector starts listening on the target behind ctx.
func NewJSErrorCollector(ctx context.Context) *JSErrorCollector {
	c := &JSErrorCollector{}
	chromedp.ListenTarget(ctx, c.handle)
	return c
}

func (c *JSErrorCollector) handle(ev interface{}) {
	switch e := ev.(type) {
	case *runtime.EventExceptionThrown:
		if e.ExceptionDetails == nil {
			return
		}
		text := e.ExceptionDetails.Text
		if obj := e.ExceptionDetails.Exception; obj != nil && obj.Description != "" {
			text = obj.Description
		}
		c.add(PageError{Source: "exception", Text: text})

	case *runtime.EventConsoleAPICalled:
		if e.Type != runtime.APITypeError {
			return
		}
		if text := consoleText(e.Args); text != "" {
			c.add(PageError{Source: "console", Text: text})
		}
	}
}

func consoleText(args []*runtime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case len(arg.Value) > 0:
			parts = append(parts, strings.Trim(string(arg.Value), `"`))
		case arg.Description != "":
			parts = append(parts, arg.Description)
		}
	}
	return strings.Join(parts, " ")
}

func (c *JSErrorCollector) add(e PageError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errors) >= maxPageErrors {
		c.dropped++
		return
	}
	c.errors = append(c.errors, e)
}

// Drain returns the errors collected since the last call, plus how many were
// dropped over the cap, and resets the collector.
func (c *JSErrorCollector) Drain() ([]PageError, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, dropped := c.errors, c.dropped
	c.errors, c.dropped = nil, 0
	return out, dropped
}
