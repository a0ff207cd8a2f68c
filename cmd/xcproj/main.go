// Package main is the entry point for the xcproj CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aidanlsb/xcproj/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
