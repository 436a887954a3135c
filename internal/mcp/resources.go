package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// resourcePrefix is the URI scheme for dishdeck resources.
const resourcePrefix = "dishdeck://"

// parseRecipeURI extracts the id from a dishdeck://recipe/{id} URI.
func parseRecipeURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, resourcePrefix+"recipe/") {
		return "", fmt.Errorf("invalid URI scheme: %s", uri)
	}
	id := strings.TrimPrefix(uri, resourcePrefix+"recipe/")
	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid recipe id in URI: %s", uri)
	}
	return id, nil
}

// handleRecipeResource handles dishdeck://recipe/{id} resources.
func (s *Server) handleRecipeResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, err := parseRecipeURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	dish, err := s.library.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     dish.Markdown(),
		},
	}, nil
}
