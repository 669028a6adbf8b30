package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mcncl/semjson/internal/analyzer"
	"github.com/mcncl/semjson/internal/compare"
	"github.com/mcncl/semjson/internal/config"
	"github.com/mcncl/semjson/internal/errors"
	"github.com/mcncl/semjson/internal/formatter"
	"github.com/mcncl/semjson/internal/logging"
	"github.com/mcncl/semjson/internal/models"
	"github.com/mcncl/semjson/internal/parser"
	"github.com/mcncl/semjson/internal/patch"
)

// CLI defines the command-line interface
var CLI struct {
	Left     string           `arg:"" help:"Left JSON document: a file path, or - to read stdin."`
	Right    string           `arg:"" help:"Right JSON document: a file path, or - to read stdin."`
	Strings  bool             `help:"Treat <left> and <right> as JSON text instead of file paths." short:"s"`
	Format   string           `help:"Output format: text, json, patch or summary." short:"f"`
	Color    bool             `help:"Colour changed lines with ANSI escapes." short:"c"`
	Collapse bool             `help:"Collapse nested containers without differences."`
	Depth    int              `help:"Collapse containers nested deeper than N levels." default:"-1" placeholder:"N"`
	MaxDepth int              `help:"Reject inputs nested deeper than N containers, 0 disables." name:"max-depth" default:"-1" placeholder:"N"`
	Output   string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config   string           `help:"Path to config file. If not specified, searches for .semjson.yml." type:"path"`
	Debug    bool             `help:"Enable debug logging." short:"d"`
	Version  kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitSame      = 0
	exitDifferent = 1
	exitError     = 2
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("semjson"),
		kong.Description("Compare two JSON documents structurally"),
		kong.UsageOnError(),
		kong.Vars{"version": "semjson version " + Version},
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "semjson: %s\n\nFor help, run: semjson --help\n", err)
		os.Exit(exitError)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(exitError)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), nil)))
		os.Exit(exitError)
	}

	code, err := run(&Context{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(exitError)
	}
	os.Exit(code)
}

// loadConfig merges defaults, the config file and explicitly set flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(configPath, cliOverrides())
}

func cliOverrides() config.Overrides {
	o := config.Overrides{
		Color:        CLI.Color,
		CollapseSame: CLI.Collapse,
		Debug:        CLI.Debug,
	}
	if CLI.Format != "" {
		format := CLI.Format
		o.Format = &format
	}
	if CLI.Depth >= 0 {
		depth := CLI.Depth
		o.OutputMaxDepth = &depth
	}
	if CLI.MaxDepth >= 0 {
		maxDepth := CLI.MaxDepth
		o.CompareMaxDepth = &maxDepth
	}
	return o
}

// run compares the two inputs, writes the rendered result and returns the exit
// code: 0 when the documents are the same, 1 when they differ and 2 when an
// input could not be parsed.
func run(ctx *Context) (int, error) {
	cfg := ctx.Config
	logger := ctx.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	// 1. Read both inputs
	left, right, err := readInputs(ctx.Stdin)
	if err != nil {
		return exitError, err
	}

	// 2. Compare
	opts := []compare.Option{
		compare.WithMaxDepth(cfg.Compare.MaxDepth),
		compare.WithLogger(logger),
	}
	if !cfg.Compare.Lazy {
		opts = append(opts, compare.WithEagerExpansion())
	}

	start := time.Now()
	res := compare.NewComparator(opts...).CompareJSONs(left, right)
	logger.Debug("comparison finished",
		"status", string(res.Status),
		"same", res.Result.IsSame,
		"elapsed", time.Since(start),
	)

	// 3. Render
	buf := &bytes.Buffer{}
	if err := render(cfg, buf, res, left, right); err != nil {
		return exitError, err
	}

	// 4. Output the result
	if err := writeOutput(ctx.Stdout, buf.Bytes()); err != nil {
		return exitError, err
	}

	return exitCode(res), nil
}

func exitCode(res models.CompareResult) int {
	switch {
	case res.Status == models.StatusError:
		return exitError
	case res.Result.IsSame:
		return exitSame
	default:
		return exitDifferent
	}
}

// render writes res in the configured format. Parse failures are always
// rendered as text.
func render(cfg *config.Config, w io.Writer, res models.CompareResult, left, right string) error {
	opts := formatter.DefaultOptions()
	opts.Color = cfg.Output.Color
	opts.CollapseSame = cfg.Output.CollapseSame
	opts.MaxDepth = cfg.Output.MaxDepth
	opts.Indent = cfg.Output.Indent
	f := formatter.NewFormatter(opts)

	if res.Status == models.StatusError && cfg.Output.Format != config.FormatJSON {
		return f.Text(w, res)
	}

	switch cfg.Output.Format {
	case config.FormatText:
		return f.Text(w, res)
	case config.FormatJSON:
		return f.JSON(w, res)
	case config.FormatSummary:
		if err := formatter.Summary(w, analyzer.Analyze(res.Result), cfg.Output.Color); err != nil {
			return errors.NewOutputError("failed to write summary", err)
		}
		return nil
	case config.FormatPatch:
		return renderPatch(cfg, w, []byte(left), []byte(right))
	default:
		return errors.NewFormatError(fmt.Sprintf("unknown output format %q", cfg.Output.Format), errors.ErrUnknownFormat)
	}
}

func renderPatch(cfg *config.Config, w io.Writer, left, right []byte) error {
	p, err := patch.Generate(left, right, patch.Options{
		Factorize:  cfg.Patch.Factorize,
		Invertible: cfg.Patch.Invertible,
	})
	if err != nil {
		return err
	}
	if cfg.Patch.Verify {
		if err := patch.Verify(left, right, p); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", p); err != nil {
		return errors.NewOutputError("failed to write patch", err)
	}
	return nil
}

// readInputs returns the text of both documents
func readInputs(stdin io.Reader) (string, string, error) {
	if CLI.Left == "-" && CLI.Right == "-" {
		return "", "", errors.NewInputError("both inputs read from stdin", errors.ErrStdinTwice)
	}

	left, err := readInput(CLI.Left, stdin)
	if err != nil {
		return "", "", err
	}
	right, err := readInput(CLI.Right, stdin)
	if err != nil {
		return "", "", err
	}
	return left, right, nil
}

// readInput reads one document from stdin, a file, or the argument itself
func readInput(arg string, stdin io.Reader) (string, error) {
	if arg == "-" {
		return readStdin(stdin)
	}
	if CLI.Strings {
		return arg, nil
	}
	return parser.ReadFile(arg)
}

func readStdin(stdin io.Reader) (string, error) {
	if stdin == nil {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Interactive mode when stdin is a terminal
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprintln(os.Stderr, "Paste a JSON document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(data), nil
}

// writeOutput writes the rendered result to file or stdout
func writeOutput(stdout io.Writer, data []byte) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, data, 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Comparison written to %s\n", CLI.Output)
		return nil
	}

	if _, err := stdout.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
