// dishdeck - a terminal recipe deck.
//
// Swipe through dishes from the dish server, keep the ones you like in a
// private recipe list, and create or import recipes of your own.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/dishdeck/internal/cli"
	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/db"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open database for persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	var telemetryClient telemetry.Client
	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		telemetryClient = telemetry.New(nil)
	} else {
		telemetryClient = telemetry.New(database)
		_ = database.Close()
	}
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		telemetryClient.Close()
		os.Exit(1)
	}
}
