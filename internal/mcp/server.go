// Package mcp provides the Model Context Protocol server for dishdeck.
//
// It exposes the private saved-recipe list to MCP-compatible clients,
// going through the same saved.Library as the TUI and CLI so concurrent
// writers never lose updates.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/pkg/version"
)

// Server wraps the MCP server with recipe tools.
type Server struct {
	library   *saved.Library
	server    *server.MCPServer
	telemetry telemetry.Client
}

// NewServer creates a new MCP server instance.
func NewServer(library *saved.Library, tc telemetry.Client) *Server {
	if tc == nil {
		tc = telemetry.NewNoop()
	}
	s := &Server{
		library:   library,
		telemetry: tc,
	}

	s.server = server.NewMCPServer(
		"dishdeck",
		version.Short(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

func (s *Server) registerTools() {
	s.server.AddTool(listSavedTool(), s.handleListSaved)
	s.server.AddTool(searchSavedTool(), s.handleSearchSaved)
	s.server.AddTool(getRecipeTool(), s.handleGetRecipe)
	s.server.AddTool(saveRecipeTool(), s.handleSaveRecipe)
	s.server.AddTool(deleteRecipeTool(), s.handleDeleteRecipe)
}

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"recipe/{id}",
			"Saved recipe",
			mcp.WithTemplateDescription("A saved recipe rendered as markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleRecipeResource,
	)
}
