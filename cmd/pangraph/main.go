package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pangraph/internal/cli"
	pgerrors "github.com/matzehuels/pangraph/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

// exitCode separates bad input (2) from internal failures (1).
func exitCode(err error) int {
	switch pgerrors.GetCode(err) {
	case pgerrors.ErrCodeMalformedInput, pgerrors.ErrCodeInvalidConfig, pgerrors.ErrCodeNotFound:
		return 2
	}
	return 1
}
