package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/simspec/internal/app"
	"github.com/specialistvlad/simspec/internal/cli"
	"github.com/specialistvlad/simspec/internal/registry"
	"github.com/specialistvlad/simspec/modules/httpruntime"
	"github.com/specialistvlad/simspec/modules/socketruntime"
)

// main is the entrypoint for the simspec harness.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main harness logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// NewApp panics on critical config errors; recover it into a clean
	// error so main can print it and exit.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	reg := registry.New(
		&httpruntime.Module{},
		&socketruntime.Module{},
	)

	harness := app.NewApp(context.Background(), outW, appConfig, reg)
	return harness.Run(context.Background())
}
