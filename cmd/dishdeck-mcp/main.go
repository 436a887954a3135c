// Package main provides the dishdeck-mcp server.
//
// dishdeck-mcp exposes the private saved-recipe list via the Model Context
// Protocol, so assistants can list, search, read, save and delete recipes.
//
// Usage:
//
//	dishdeck-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/db"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/mcp"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/pkg/version"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("dishdeck-mcp %s\n", version.Version)
		os.Exit(0)
	}

	// Handle --help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	// Setup context with cancellation on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol; log to the file only.
	if err := log.Init(cfg.BaseDir); err == nil {
		log.Quiet()
		defer func() { _ = log.Close() }()
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	var store saved.Store
	if cfg.Storage.Backend == config.BackendFile {
		store = saved.NewFileStore(paths.SavedRecipes)
	} else {
		store = db.NewCollectionStore(database, models.CollectionPrivateRecipes)
	}

	tc := telemetry.New(database)
	defer tc.Close()

	server := mcp.NewServer(saved.NewLibrary(store), tc)
	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `dishdeck-mcp - MCP server for your dishdeck recipes

USAGE:
    dishdeck-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    dishdeck-mcp is a Model Context Protocol (MCP) server that exposes the
    private dishdeck recipe list to MCP-compatible clients.

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

CONFIGURATION:
    {
      "mcpServers": {
        "dishdeck": {
          "type": "stdio",
          "command": "dishdeck-mcp"
        }
      }
    }

TOOLS PROVIDED:
    dishdeck_list_saved     List saved recipes
    dishdeck_search_saved   Search saved recipes by title and tags
    dishdeck_get_recipe     Get one recipe as JSON
    dishdeck_save_recipe    Save a new private recipe
    dishdeck_delete_recipe  Delete a saved recipe

RESOURCES PROVIDED:
    dishdeck://recipe/{id}  Recipe as markdown
`
	fmt.Print(help)
}
