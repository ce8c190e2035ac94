// Command collage arranges a directory of album art into a square collage.
//
// Usage:
//
//	collage build --dir ./covers --output collage.jpg
//	collage view --dir ./covers
//	collage serve
//	collage version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "✗ ")
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
