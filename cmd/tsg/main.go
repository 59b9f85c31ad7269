package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsgraph/tsg/internal/cli"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(130) // standard shell convention for SIGINT
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(tsgerrors.ExitCode(err))
}
