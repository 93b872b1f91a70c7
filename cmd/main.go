package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

const (
	appName = "FocusFlow"
	appID   = "com.focusflow.app"
)

var version = "dev"

// CLI is the command line surface. Every flag can also come from a
// FOCUSFLOW_* environment variable or a .env file in the working directory.
type CLI struct {
	Config  string           `short:"c" help:"Application config file (default: <data-dir>/config.yaml)" env:"FOCUSFLOW_CONFIG" type:"path"`
	DataDir string           `short:"d" help:"Directory holding settings and config" env:"FOCUSFLOW_DATA_DIR" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging" env:"FOCUSFLOW_VERBOSE"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run       RunCmd       `cmd:"" default:"withargs" help:"Run the timer (default)"`
	Autostart AutostartCmd `cmd:"" help:"Manage launching at login"`
}

// AfterApply sets up logging once flags are parsed. The run command refines
// the level from the config file.
func (cli *CLI) AfterApply() error {
	setupLogging(cli.logLevel(slog.LevelInfo))
	return nil
}

func (cli *CLI) logLevel(configured slog.Level) slog.Level {
	if cli.Verbose {
		return slog.LevelDebug
	}
	return configured
}

func setupLogging(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("focusflow"),
		kong.Description("Focus timer with work and break intervals."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
}

func main() {
	loadDotEnv()

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("Failed to build command line", "error", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&cli); err != nil {
		slog.Error("FocusFlow failed", "error", err)
		os.Exit(1)
	}
}
