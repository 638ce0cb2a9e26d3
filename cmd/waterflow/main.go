package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/waterflow/internal/cli"
	wferrors "github.com/matzehuels/waterflow/pkg/errors"
)

// Set via -ldflags "-X main.version=...".
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)

	if err := cli.New(os.Stderr, cli.LogInfo).Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", wferrors.UserMessage(err))
		os.Exit(1)
	}
}
