// Package main provides the canonurl CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lukemcguire/canonurl/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
