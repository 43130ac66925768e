// Package main provides the entry point for the kitchen API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/container"
	"go.uber.org/fx"
)

func main() {
	configPath := flag.String("config", os.Getenv("KITCHEN_CONFIG"), "path to the config file")
	flag.Parse()

	app := fx.New(
		fx.NopLogger, // the application logs through zap
		fx.Supply(container.ConfigPath(*configPath)),
		container.Module,
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStart()

	if err := app.Start(startCtx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// either a signal or a fatal server error ends the run
	exitCode := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		exitCode = sig.ExitCode
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
		exitCode = 1
	}

	os.Exit(exitCode)
}
