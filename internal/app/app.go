package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/fibsci/internal/cli"
	"github.com/agbru/fibsci/internal/config"
	apperrors "github.com/agbru/fibsci/internal/errors"
	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/server"
	"github.com/agbru/fibsci/internal/ui"
)

// Application represents the fibsci application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.GlobalFactory()
	}

	programName := "fibsci"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg, err := config.ParseConfig(fs, cmdArgs)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Invalid configuration: %v\n", err)
		return nil, err
	}

	app.Config = config.ApplyAdaptiveThresholds(cfg)
	return app, nil
}

// Run executes the application based on the configured mode.
// The dispatch order is: version, completion, server, one-shot calculation
// (when -n was given), interactive session otherwise.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.initLogging()
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Server {
		return a.runServer()
	}

	if a.Config.Compare {
		a.Config.Algo = "all"
	}

	if !a.Config.HasN && a.Config.LastDigits == 0 {
		return a.runREPL()
	}

	return a.runCalculate(ctx, out)
}

// initLogging sets the global log level from the verbosity flags.
func (a *Application) initLogging() {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP API server and blocks until shutdown.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive calculator session.
func (a *Application) runREPL() int {
	registry := make(map[string]fibonacci.Calculator)
	for _, name := range a.Factory.List() {
		if calc, err := a.Factory.Get(name); err == nil {
			registry[name] = calc
		}
	}

	repl := cli.NewREPL(registry, cli.REPLConfig{
		DefaultAlgo:     a.Config.Algo,
		Timeout:         a.Config.Timeout,
		Threshold:       a.Config.Threshold,
		SciThresholdExp: a.Config.SciThresholdExp,
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
