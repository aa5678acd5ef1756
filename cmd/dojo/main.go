// Package main provides the entry point for the Dojo client application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/di"
	"github.com/dojoapp/dojo-client/internal/di/providers"
	"github.com/dojoapp/dojo-client/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start client: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	shellHandle := do.MustInvoke[*providers.ShellHandle](injector)

	// Cancel the shell's context on SIGINT/SIGTERM so in-flight requests stop.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	if err := shellHandle.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Shell exited with error", "error", err)
		exitCode = 1
	}

	// Shutdown all services in reverse order
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The credential store uses a wrapper type and needs explicit cleanup.
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close credential store", "error", err)
		}
	}

	os.Exit(exitCode)
}
