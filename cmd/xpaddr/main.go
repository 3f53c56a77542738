package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"xpaddr/cmd/xpaddr/cmd"
	"xpaddr/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx)
	stop()
	logger.Sync()
	os.Exit(code)
}
