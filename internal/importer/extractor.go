package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/llm"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

const extractPrompt = `You extract cooking recipes from web page text.
Reply with a single JSON object and nothing else, using these keys:
  "title": string
  "tags": array of short lower-case strings (diet, meal type, cuisine)
  "ingredients": array of strings, one ingredient per entry
  "directions": array of strings, one step per entry
  "notes": string
  "rating": number from 0 to 10, or null
If the text contains no recipe, reply with {"title": ""}.`

// LLMExtractor asks a chat model to pull a recipe out of free text.
type LLMExtractor struct {
	provider llm.Provider
}

// NewLLMExtractor creates an extractor backed by provider.
func NewLLMExtractor(provider llm.Provider) *LLMExtractor {
	return &LLMExtractor{provider: provider}
}

// Extract returns the recipe found in pageText or ErrNoRecipe.
func (e *LLMExtractor) Extract(ctx context.Context, pageText string) (*models.Dish, error) {
	if strings.TrimSpace(pageText) == "" {
		return nil, ErrNoRecipe
	}

	resp, err := e.provider.ChatSync(ctx, []llm.Message{
		llm.NewSystemMessage(extractPrompt),
		llm.NewUserMessage(pageText),
	}, llm.ChatOptions{MaxTokens: 2048})
	if err != nil {
		return nil, fmt.Errorf("extract recipe: %w", err)
	}

	body := jsonObject(resp.Content)
	if body == "" {
		return nil, ErrNoRecipe
	}

	var dish models.Dish
	if err := json.Unmarshal([]byte(body), &dish); err != nil {
		return nil, fmt.Errorf("decode extracted recipe: %w", err)
	}
	if strings.TrimSpace(dish.Title) == "" {
		return nil, ErrNoRecipe
	}

	// The model never decides identity or storage.
	dish.ID = ""
	dish.Privacy = ""
	dish.Likes = 0
	return &dish, nil
}

// jsonObject trims code fences and chatter around the outermost object.
func jsonObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
