// Package ui renders capture progress on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter receives pipeline progress.
type Reporter interface {
	// Step announces a pipeline step. value, when non-empty, is highlighted.
	Step(label, value string)
	Done(path string)
	Fail(err error)
}

// Terminal writes styled progress lines to out and failures to errOut. On a
// TTY each step replaces the previous one; otherwise every step gets its own
// line.
type Terminal struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool
	open        bool // a step line on out has no trailing newline yet

	step    lipgloss.Style
	value   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewTerminal creates a Terminal reporter writing progress to out and
// failures to errOut.
func NewTerminal(out, errOut io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out:         out,
		errOut:      errOut,
		interactive: isTerminal(out),
		step:        r.NewStyle().Italic(true),
		value:       r.NewStyle().Foreground(lipgloss.Color("6")),
		success:     r.NewStyle().Foreground(lipgloss.Color("2")),
		failure:     lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (t *Terminal) Step(label, value string) {
	text := label + " ..."
	if value != "" {
		text = fmt.Sprintf("%s '%s' ...", label, t.value.Render(value))
	}
	t.line(t.step.Render(text), false)
}

func (t *Terminal) Done(path string) {
	t.line(t.success.Render(fmt.Sprintf("Successfully saved screenshot to '%s'.", t.value.Render(path))), true)
}

// Fail leaves the last step visible and prints the error below it.
func (t *Terminal) Fail(err error) {
	if t.open {
		fmt.Fprintln(t.out)
		t.open = false
	}
	fmt.Fprintln(t.errOut, t.failure.Render("Error: ")+err.Error())
}

func (t *Terminal) line(text string, final bool) {
	if !t.interactive {
		fmt.Fprintln(t.out, text)
		return
	}
	// Clear the current line and rewrite it in place.
	fmt.Fprint(t.out, "\r\x1b[2K"+text)
	t.open = !final
	if final {
		fmt.Fprintln(t.out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Quiet discards all progress.
type Quiet struct{}

func (Quiet) Step(string, string) {}
func (Quiet) Done(string)         {}
func (Quiet) Fail(error)          {}
