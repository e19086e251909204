package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
)

func main() {
	// Entry point: create a root context and run the application.
	ctx := context.Background()

	// Pass in the command line arguments, environment variables, and output
	// streams to the run function. This allows the run function to be tested in
	// isolation without relying on the process environment or a real terminal.
	if err := run(ctx, os.Args, env.ToMap(os.Environ()), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %s\n", err)
		os.Exit(1)
	}
}
