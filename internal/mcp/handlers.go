package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
)

// Pagination constants for MCP tool handlers.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// parseLimit extracts and validates a limit parameter from MCP tool arguments.
// Returns defaultVal if not present, caps at maxVal if exceeded.
func parseLimit(arguments map[string]interface{}, defaultVal, maxVal int) int {
	if l, ok := arguments["limit"].(float64); ok && l > 0 {
		limit := int(l)
		if limit > maxVal {
			return maxVal
		}
		return limit
	}
	return defaultVal
}

// parseStrings reads an array argument of strings.
func parseStrings(arguments map[string]interface{}, key string) []string {
	raw, ok := arguments[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	s.telemetry.TrackMCPToolCalled(toolName, time.Since(start).Milliseconds(), success)
}

// RecipeResponse represents a recipe in MCP tool responses.
type RecipeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags,omitempty"`
	Rating      string   `json:"rating"`
	Image       string   `json:"image,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Directions  []string `json:"directions,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	OriginalURL string   `json:"original_url,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// toRecipeResponse converts a dish, with or without the recipe body.
func toRecipeResponse(d *models.Dish, full bool) RecipeResponse {
	resp := RecipeResponse{
		ID:          d.ID,
		Title:       d.DisplayTitle(),
		Tags:        d.Tags,
		Rating:      d.RatingLabel(),
		OriginalURL: d.OriginalURL,
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if full {
		resp.Image = d.ResolveImage()
		resp.Ingredients = d.Ingredients.Strings()
		resp.Directions = d.Directions
		resp.Notes = d.Notes
	}
	return resp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleListSaved handles the dishdeck_list_saved tool.
func (s *Server) handleListSaved(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	const tool = "dishdeck_list_saved"

	limit := parseLimit(req.Params.Arguments, defaultListLimit, maxListLimit)
	offset := 0
	if o, ok := req.Params.Arguments["offset"].(float64); ok && o >= 0 {
		offset = int(o)
	}

	dishes, err := s.library.List(ctx)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list recipes: %v", err)), nil
	}

	results := make([]RecipeResponse, 0, limit)
	for i := offset; i < len(dishes) && len(results) < limit; i++ {
		results = append(results, toRecipeResponse(&dishes[i], false))
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(results)
}

// handleSearchSaved handles the dishdeck_search_saved tool.
func (s *Server) handleSearchSaved(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	const tool = "dishdeck_search_saved"

	query, _ := req.Params.Arguments["query"].(string)
	tags := parseStrings(req.Params.Arguments, "tags")
	limit := parseLimit(req.Params.Arguments, defaultListLimit, maxListLimit)

	dishes, err := s.library.Search(ctx, query, tags)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]RecipeResponse, 0, min(len(dishes), limit))
	for i := 0; i < len(dishes) && i < limit; i++ {
		results = append(results, toRecipeResponse(&dishes[i], false))
	}

	s.telemetry.TrackSearchPerformed(len(query), len(dishes), "mcp")
	s.trackToolCall(tool, start, true)
	return jsonResult(results)
}

// handleGetRecipe handles the dishdeck_get_recipe tool.
func (s *Server) handleGetRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	const tool = "dishdeck_get_recipe"

	id, ok := req.Params.Arguments["id"].(string)
	if !ok || id == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	dish, err := s.library.Get(ctx, id)
	if err != nil {
		s.trackToolCall(tool, start, false)
		if errors.Is(err, saved.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("recipe not found: %s", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get recipe: %v", err)), nil
	}

	s.trackToolCall(tool, start, true)
	return jsonResult(toRecipeResponse(dish, true))
}

// handleSaveRecipe handles the dishdeck_save_recipe tool.
func (s *Server) handleSaveRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	const tool = "dishdeck_save_recipe"
	args := req.Params.Arguments

	title, _ := args["title"].(string)
	if strings.TrimSpace(title) == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("title parameter is required"), nil
	}

	dish := models.Dish{
		Title:      strings.TrimSpace(title),
		Tags:       models.NormalizeTags(parseStrings(args, "tags")),
		Directions: models.StepList(parseStrings(args, "directions")),
	}
	for _, line := range parseStrings(args, "ingredients") {
		dish.Ingredients = append(dish.Ingredients, models.ParseIngredientLine(line))
	}
	if notes, ok := args["notes"].(string); ok {
		dish.Notes = notes
	}
	if u, ok := args["original_url"].(string); ok {
		dish.OriginalURL = u
	}
	if r, ok := args["rating"].(float64); ok {
		if dish.Rating = models.ValidRating(r); dish.Rating == nil {
			s.trackToolCall(tool, start, false)
			return mcp.NewToolResultError("rating must be between 0 and 10"), nil
		}
	}

	created, err := s.library.Create(ctx, dish)
	if err != nil {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to save recipe: %v", err)), nil
	}

	s.telemetry.TrackRecipeCreated(string(created.Privacy), "mcp")
	s.trackToolCall(tool, start, true)
	return jsonResult(toRecipeResponse(&created, true))
}

// handleDeleteRecipe handles the dishdeck_delete_recipe tool.
func (s *Server) handleDeleteRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	const tool = "dishdeck_delete_recipe"

	id, ok := req.Params.Arguments["id"].(string)
	if !ok || id == "" {
		s.trackToolCall(tool, start, false)
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	if err := s.library.Delete(ctx, id); err != nil {
		s.trackToolCall(tool, start, false)
		if errors.Is(err, saved.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("recipe not found: %s", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete recipe: %v", err)), nil
	}

	s.telemetry.TrackRecipeDeleted("mcp")
	s.trackToolCall(tool, start, true)
	return jsonResult(map[string]any{"success": true, "id": id})
}
