package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonorder/internal/config"
	"github.com/mcncl/jsonorder/internal/errors"
	"github.com/mcncl/jsonorder/internal/formatter"
	"github.com/mcncl/jsonorder/internal/models"
	"github.com/mcncl/jsonorder/internal/normalizer"
	"github.com/mcncl/jsonorder/internal/parser"
)

// stdioPath selects stdin for INPUT or stdout for OUTPUT.
const stdioPath = "-"

// CLI defines the command-line interface
var CLI struct {
	Input   string           `arg:"" help:"JSON file to normalize, or - to read stdin."`
	Output  string           `arg:"" help:"File to (over)write with the normalized JSON, or - to write stdout."`
	Config  string           `help:"Path to a config file. Defaults to the nearest .jsonorder.yml." short:"c" type:"path"`
	Indent  *int             `help:"Indent width of the output, overriding the config file." short:"n"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonorder"),
		kong.Description("Rewrites a JSON document into a deterministic canonical order"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(errors.UserFriendlyError(err)))
		if CLI.Debug {
			fmt.Fprintln(os.Stderr, dimStyle.Render(err.Error()))
		}
		fmt.Fprintln(os.Stderr, dimStyle.Render("\nFor help, run: jsonorder --help"))
		os.Exit(1)
	}
}

// newContext resolves configuration from the config file and flags.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Indent: CLI.Indent,
		Debug:  CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration '%s'", configPath), err)
	}

	return &Context{
		Config: cfg,
		Logger: newLogger(os.Stderr, cfg.Dev.Debug),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(io.Discard, false)
	}

	// 1. Parse JSON input
	doc, err := parseInput(ctx)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("parsed input", slog.String("path", CLI.Input), slog.String("root", doc.RootKind.String()))

	// 2. Normalize
	normalized := normalizer.NewFromConfig(ctx.Config, ctx.Logger).Normalize(doc.Root)

	// 3. Render
	out, err := formatter.NewFormatterWithConfig(ctx.Config.Formatting).Format(normalized)
	if err != nil {
		return errors.NewFormatError("failed to render normalized JSON", err)
	}

	// 4. Output the result
	return writeOutput(ctx, out)
}

// parseInput reads JSON from file or stdin
func parseInput(ctx *Context) (models.Document, error) {
	if CLI.Input != stdioPath {
		return parser.ParseFile(CLI.Input)
	}

	stdin := ctx.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	jsonData, err := io.ReadAll(stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseString(string(jsonData))
}

// writeOutput writes the rendered document to file or stdout
func writeOutput(ctx *Context, out []byte) error {
	if CLI.Output == stdioPath {
		stdout := ctx.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := stdout.Write(out); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if CLI.Output == "" {
		return errors.NewOutputError("output path is empty", errors.ErrInvalidFilePath)
	}
	if err := os.WriteFile(CLI.Output, out, 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
	}
	if ctx.Stderr != nil {
		fmt.Fprintf(ctx.Stderr, "%s Normalized JSON written to %s\n", successStyle.Render("✓"), CLI.Output)
	}
	return nil
}
