package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/display"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one scene to the configured outputs
func run(ctx context.Context, args []string, getenv func(string) string, stdout io.Writer) error {
	opts, err := config.Load(args, getenv)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			config.Usage(stdout)
		}
		return err
	}

	fmt.Fprintln(stdout, "Starting Whitted Raytracer...")

	selectedScene, err := scene.Create(opts.Scene)
	if err != nil {
		return err
	}
	renderConfig := opts.RenderConfig(selectedScene)

	sinks := []renderer.Sink{display.NewPNGSink(opts.Output)}
	if opts.Raw != "" {
		sinks = append(sinks, display.NewRawFileSink(opts.Raw))
	}

	logger := &writerLogger{w: stdout}
	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.Camera, renderConfig, logger)
	if _, err := raytracer.Render(ctx, renderer.NewMultiSink(sinks...)); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render saved as %s\n", opts.Output)
	if opts.Raw != "" {
		fmt.Fprintf(stdout, "Raw framebuffer saved as %s\n", opts.Raw)
	}
	return nil
}

// writerLogger implements core.Logger on top of an io.Writer
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}
