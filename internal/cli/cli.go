// Package cli provides the command-line interface for dishdeck.
package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/pkg/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var telemetryClient telemetry.Client = telemetry.NewNoop()

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "dishdeck",
	Short: "Swipe through dishes, keep the ones you like",
	Long: `Swipe through dishes, keep the ones you like

A terminal recipe deck. Swipe right to save a dish to your private
recipe list, swipe left to skip it, tap a card to read the recipe.

Run without arguments to launch the interactive TUI.

Telemetry:
  Telemetry is enabled by default, always anonymous, and will never track
  recipe contents, personal information, or IP addresses.

  Opt-out with:
  	DISHDECK_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Track command execution (skip for root TUI command)
		if cmd.Name() != "dishdeck" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}

		// Track help viewed if --help was used
		if cmd.Flags().Changed("help") {
			telemetryClient.TrackCLIHelpViewed(cmd.Name(), os.Args[1:])
		}
	},
}

func init() {
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "Use the built-in sample deck instead of the dish server")

	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	// Track app exit for CLI mode (non-TUI subcommands)
	if rootCmd.CalledAs() != "" && rootCmd.CalledAs() != "dishdeck" {
		durationMs := time.Since(commandStartTime).Milliseconds()
		telemetryClient.TrackAppExited("cli", durationMs, 0)
	}

	return err
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection", "dish server"):
		return "network_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist", "no recipe"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format", "unsupported"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
