package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/gridsweep/internal/app"
	"github.com/specialistvlad/gridsweep/internal/cli"
	"github.com/specialistvlad/gridsweep/internal/config"
	"github.com/specialistvlad/gridsweep/internal/hcl"
	"github.com/specialistvlad/gridsweep/internal/yaml"
)

// main is the entrypoint for the gridsweep application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		stop()
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Jobs are printed to outW; usage and logs go to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := config.NewFileLoader(hcl.NewDecoder(), yaml.NewDecoder())
	gridsweepApp := app.NewApp(outW, errW, appConfig, loader)

	return gridsweepApp.Run(ctx)
}
