package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/state"
)

const appName = "boky-t"

var version = "dev"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.Load(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if dir := cmd.String("corpus"); dir != "" {
		env.Cfg.Corpus.Dir = dir
	}

	logging := env.Cfg.Logging
	if cmd.Bool("debug") {
		logging.Console.Level = "debug"
		if logging.File.Level == "none" || logging.File.Level == "" {
			logging.File.Level = "debug"
		}
	}
	// the terminal belongs to the reader, logs go to file only
	if first := cmd.Args().First(); first == "" || first == "read" {
		logging.Console.Level = "none"
	}
	if env.Log, err = logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if configFile == "" {
		env.Log.Debug("Using default configuration location", zap.String("file", env.Cfg.Path()))
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	// close logging
	env.RestoreStdLog()
	return nil
}

// errors from subcommands are logged here, before the context is destroyed
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func main() {

	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "terminal reader for the Malagasy Anglican prayer book",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Action:          runReader,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.StringFlag{Name: "corpus", Usage: "read books.json, chapters.json, titles.json and contents.json from `DIR`"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything, to console and file"},
		},
		Commands: []*cli.Command{
			{
				Name:         "read",
				Usage:        "Opens the interactive reader (default)",
				OnUsageError: usageErrorHandler,
				Action:       runReader,
			},
			{
				Name:         "search",
				Usage:        "Prints books, chapters and titles matching QUERY",
				OnUsageError: usageErrorHandler,
				Action:       runSearch,
				ArgsUsage:    "QUERY",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "book", Aliases: []string{"b"}, Usage: "limit the search to the book called `NAME`"},
				},
			},
			{
				Name:         "show",
				Usage:        "Prints the content of a title",
				OnUsageError: usageErrorHandler,
				Action:       runShow,
				ArgsUsage:    "TITLE_ID",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "zoom", Aliases: []string{"z"}, Value: content.DefaultZoom,
						Usage: fmt.Sprintf("scale point font sizes to `PERCENT` (%d-%d)", content.MinZoom, content.MaxZoom)},
					&cli.BoolFlag{Name: "html", Usage: "output assembled HTML instead of plain text"},
				},
			},
			{
				Name:         "list",
				Usage:        "Prints the titles of a book in reading order",
				OnUsageError: usageErrorHandler,
				Action:       runList,
				ArgsUsage:    "BOOK",
			},
			{
				Name:         "check",
				Usage:        "Loads the corpus and reports every integrity problem",
				OnUsageError: usageErrorHandler,
				Action:       runCheck,
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps actual configuration (TOML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
