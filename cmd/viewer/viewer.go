package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelview/pkg/config"
	"github.com/willbeason/mandelview/pkg/frame"
	"github.com/willbeason/mandelview/pkg/viewer"
)

// shutdownSignals stop the server.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func mainCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Serve an interactive Mandelbrot viewer over HTTP and websockets",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())

	return cmd
}

func runCmd(cmd *cobra.Command, cfg config.Config) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	frame.SetLogger(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	return viewer.New(cfg, logger).ListenAndServe(ctx)
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
