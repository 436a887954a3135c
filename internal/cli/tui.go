package cli

import (
	"fmt"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/source"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui"
	"github.com/asteroid-belt/dishdeck/pkg/version"
	"github.com/spf13/cobra"
)

var demoMode bool

// runTUI executes the TUI when no subcommand is specified.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("tui", fmt.Errorf("load config: %w", err))
	}

	if err := log.Init(cfg.BaseDir); err != nil {
		return trackCLIError("tui", fmt.Errorf("initialize logger: %w", err))
	}
	defer func() {
		_ = log.Close()
	}()

	svc, err := openServices(cfg)
	if err != nil {
		return trackCLIError("tui", err)
	}
	defer svc.Close()

	paths := config.GetPaths(cfg)
	log.Printf("dishdeck %s\n", version.Short())
	log.Printf("  Base directory: %s\n", cfg.BaseDir)
	log.Printf("  Database: %s\n", paths.Database)
	log.Printf("  Storage: %s\n", cfg.Storage.Backend)

	opts := tui.Options{
		Config:    cfg,
		Library:   svc.library,
		Importer:  newImporter(cfg),
		State:     svc.db,
		Telemetry: telemetryClient,
		Mode:      "tui",
	}
	if demoMode {
		opts.Fetcher = source.Samples()
		opts.Mode = "demo"
		log.Println("  Deck: built-in samples")
	} else {
		opts.Fetcher = svc.deckSource()
		opts.Filters = svc.remote
		opts.Publisher = svc.remote
		opts.Pinger = svc.remote
		log.Printf("  Dish server: %s\n", svc.remote.BaseURL())
	}

	if telemetry.IsEnabled() {
		log.Println("  Telemetry: ON (set DISHDECK_TELEMETRY_TRACKING_ENABLED=false to disable)")
	}

	savedCount := 0
	if dishes, err := svc.library.List(cmd.Context()); err == nil {
		savedCount = len(dishes)
	}
	telemetryClient.TrackAppStarted(opts.Mode, savedCount)

	log.Quiet()
	return tui.Run(opts)
}
