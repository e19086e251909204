package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kula-app/ggway/internal/config"
	"github.com/kula-app/ggway/internal/gamerpower"
	"github.com/kula-app/ggway/internal/logging"
	"github.com/kula-app/ggway/internal/query"
	"github.com/kula-app/ggway/internal/render"
)

// The run function is like the main function, except that it takes in operating system fundamentals as arguments, and returns an error.
//
// If the run function finishes without an error, the giveaways were printed to stdout.
// If the run function returns an error, nothing was printed to stdout.
//
// The logic of the run function must stay isolated so it can be tested in parallel.
func run(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(environ)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	logger := slog.New(logging.NewTerminalHandler(stderr, level, bool(cfg.NoColor)))

	// Cancel the in-flight request on interrupt/termination.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Every argument is a candidate filter, including the program path, which
	// matches no filter pattern and is ignored.
	q := query.Parse(args)

	client := gamerpower.NewClient(nil, logger, cfg)
	doc, err := client.Giveaways(ctx, q)
	if err != nil {
		return err
	}

	colorize := !bool(cfg.NoColor) && logging.IsTerminal(stdout)
	return render.NewRenderer(stdout, colorize).Render(doc)
}
