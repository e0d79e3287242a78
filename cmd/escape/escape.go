package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/willbeason/mandelview/pkg/config"
	"github.com/willbeason/mandelview/pkg/export"
	"github.com/willbeason/mandelview/pkg/frame"
)

func mainCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "escape",
		Short: "Render one frame of the Mandelbrot set to an image file",
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
	frame.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	format, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	v, err := cfg.Viewport()
	if err != nil {
		return err
	}

	r := frame.NewRenderer(
		frame.WithCapacity(cfg.MaxPixels),
		frame.WithIterationCap(cfg.IterationCap),
	)
	err = r.Configure(cfg.Bias, cfg.Target)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = r.RenderContext(cmd.Context(), v)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	err = export.WriteFile(cfg.Output, r.Buffer().Image(), format)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	_, err = p.Fprintf(cmd.OutOrStdout(), "Rendered %d pixels (%d inside the set) in %v to %s\n",
		r.Buffer().Len(), countInside(r.Buffer()), elapsed.Round(time.Millisecond), cfg.Output)
	return err
}

func outputFormat(cfg config.Config) (export.Format, error) {
	if cfg.Format != "" {
		return export.ParseFormat(cfg.Format)
	}
	f, err := export.FormatFromPath(cfg.Output)
	if err != nil {
		return 0, fmt.Errorf("%w; set --format", err)
	}
	return f, nil
}

func countInside(b *frame.Buffer) int {
	inside := 0
	for i := 0; i < b.Len(); i++ {
		if p, _ := b.Pixel(i); p == frame.Transparent {
			inside++
		}
	}
	return inside
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
