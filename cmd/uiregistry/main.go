// Command uiregistry builds and serves a UI component registry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/uiregistry/internal/cli"
	"github.com/matzehuels/uiregistry/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.IsCanceled(err):
		return 130 // interrupted
	default:
		fmt.Fprintln(os.Stderr, "error:", errors.UserMessage(err))
		return 1
	}
}
