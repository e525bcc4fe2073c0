// Command websnap captures a screenshot of a web page with headless Chrome.
//
// Usage:
//
//	websnap [flags] <url>     capture a screenshot
//	websnap mcp               serve capture_screenshot over MCP stdio
//
// Examples:
//
//	websnap https://example.com
//	websnap -o shots/ -W 1280 -H 720 https://example.com
//	websnap -o page.webp -s 2 --wait-for "#app" https://example.com
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/websnap/internal/capture"
	"github.com/bobmcallan/websnap/internal/common"
	"github.com/bobmcallan/websnap/internal/config"
	"github.com/bobmcallan/websnap/internal/mcp"
	"github.com/bobmcallan/websnap/internal/ui"
)

// app holds the process-level dependencies so tests can swap them.
type app struct {
	launch capture.LaunchFunc
	stdout io.Writer
	stderr io.Writer
}

// options are the parsed command-line flags.
type options struct {
	configFile string
	output     string
	width      int
	height     int
	scale      float64
	waitFor    string
	quiet      bool
	verbose    bool
}

func main() {
	a := &app{launch: capture.DefaultLaunch, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the command line and reports any failure once, styled or raw
// depending on --quiet.
func (a *app) execute(args []string) error {
	opts := &options{}
	term := ui.NewTerminal(a.stdout, a.stderr)
	cmd := a.rootCmd(opts, term)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		a.reportError(opts, term, err)
	}
	return err
}

func (a *app) rootCmd(opts *options, term *ui.Terminal) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "websnap [flags] <url>",
		Short:         "Simply screenshot websites from your terminal",
		Version:       config.GetFullVersion(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCapture(cmd, opts, term, args[0])
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "path to a config file (TOML or YAML)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output directory or file name")
	f.IntVarP(&opts.width, "width", "W", 0, "screen width (default 1920)")
	f.IntVarP(&opts.height, "height", "H", 0, "screen height (default 1080)")
	f.Float64VarP(&opts.scale, "scale", "s", 0, "scale factor (default 1.0)")
	f.StringVar(&opts.waitFor, "wait-for", "", `wait for DOM element (query selector) (default "body")`)
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "no progress output; print only raw errors")

	cmd.AddCommand(a.mcpCmd(opts))

	return cmd
}

func (a *app) mcpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve capture_screenshot as an MCP tool over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := common.NewLoggerFromConfig(cfg.Logging)
			logger.Info().Str("version", config.Version).Msg("mcp server starting")

			if err := mcp.NewServer(cfg, logger, a.launch).ServeStdio(); err != nil {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		},
	}
}

func (a *app) runCapture(cmd *cobra.Command, opts *options, term *ui.Terminal, url string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := common.NewLoggerFromConfig(cfg.Logging)

	req, err := config.Resolve(cfg, flagsFrom(cmd, opts, url))
	if err != nil {
		return err
	}

	var reporter ui.Reporter = ui.Quiet{}
	if !opts.quiet {
		reporter = term
	}

	_, err = capture.Run(cmd.Context(), req, capture.Options{
		Browser:  cfg.Browser,
		Launch:   a.launch,
		Reporter: reporter,
		Logger:   logger,
	})
	return err
}

func (a *app) reportError(opts *options, term *ui.Terminal, err error) {
	if opts.quiet {
		fmt.Fprintln(a.stderr, err)
		return
	}
	term.Fail(err)
}

// loadConfig reads the --config file, or the first discovered one.
func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configFile
	if path == "" {
		path = config.Discover()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	config.ApplyFlagOverrides(cfg, opts.verbose)
	return cfg, nil
}

// flagsFrom keeps only the flags the user actually set, so config values and
// built-in defaults apply to the rest.
func flagsFrom(cmd *cobra.Command, opts *options, url string) config.Flags {
	f := cmd.Flags()
	flags := config.Flags{URL: url, Output: opts.output}
	if f.Changed("width") {
		flags.Width = &opts.width
	}
	if f.Changed("height") {
		flags.Height = &opts.height
	}
	if f.Changed("scale") {
		flags.Scale = &opts.scale
	}
	if f.Changed("wait-for") {
		flags.WaitFor = &opts.waitFor
	}
	return flags
}
