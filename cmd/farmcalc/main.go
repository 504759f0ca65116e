// Command farmcalc computes farm yield and profit reports from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Simplici0/farmyield/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
