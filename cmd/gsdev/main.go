package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kmax12/gridstatusio/cmd/gsdev/commands"
	"github.com/kmax12/gridstatusio/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(domain.ExitCodeOf(err))
	}
}
