package config

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -4 }},
		{"over capacity", func(c *Config) { c.Width, c.Height, c.MaxPixels = 100, 100, 9999 }},
		{"zero capacity", func(c *Config) { c.MaxPixels = 0 }},
		{"zero bias", func(c *Config) { c.Bias = 0 }},
		{"zero target", func(c *Config) { c.Target = 0 }},
		{"zero iterations", func(c *Config) { c.IterationCap = 0 }},
		{"negative zoom", func(c *Config) { c.ZoomWidth = -1 }},
		{"left without zoom", func(c *Config) { c.LeftX = -0.8 }},
		{"top without zoom", func(c *Config) { c.TopY = 0.05 }},
		{"huge capacity", func(c *Config) { c.MaxPixels = math.MaxInt }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.BindFlags(fs)

	err := fs.Parse([]string{
		"--width=640", "--height", "480",
		"--bias=3", "--target=200",
		"--iterations=1000",
		"--zoom-width=0.5", "--left=-0.8", "--top=0.05",
		"-o", "out.tiff",
		"--log-level=debug",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Width, want.Height = 640, 480
	want.Bias, want.Target = 3, 200
	want.IterationCap = 1000
	want.ZoomWidth, want.LeftX, want.TopY = 0.5, -0.8, 0.05
	want.Output = "out.tiff"
	want.LogLevel = "debug"
	if c != want {
		t.Errorf("parsed config = %+v, want %+v", c, want)
	}
}

func TestViewport(t *testing.T) {
	c := Default()
	c.Width, c.Height = 800, 600

	v, err := c.Viewport()
	if err != nil {
		t.Fatal(err)
	}
	if v.Width != 800 || v.Height != 600 || v.ZoomWidth != 4 || v.LeftX != -2.5 || v.TopY != -1.5 {
		t.Errorf("start Viewport() = %+v", v)
	}

	c.ZoomWidth, c.LeftX, c.TopY = 0.1, -0.8, 0.05
	v, err = c.Viewport()
	if err != nil {
		t.Fatal(err)
	}
	if v.ZoomWidth != 0.1 || v.LeftX != -0.8 || v.TopY != 0.05 {
		t.Errorf("explicit Viewport() = %+v", v)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseLevel("verbose"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseLevel(verbose) = %v, want ErrInvalid", err)
	}
}
