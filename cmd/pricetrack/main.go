// cmd/pricetrack/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/cli"
)

func main() {
	// Cancelling the context tears down the browser session before exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	context.AfterFunc(ctx, func() {
		log.Warn().Msg("Interrupt received, shutting down gracefully...")
	})

	cli.Execute(ctx)
}
