package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ytdl/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			if kind := services.Kind(err); kind != "" {
				fmt.Fprintf(os.Stderr, "error (%s): %v\n", kind, err)
			} else {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
		}
		os.Exit(services.ExitCode(err))
	}
}
