package importer

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/llm"
	"github.com/asteroid-belt/dishdeck/internal/testutil"
)

const livePage = `Grandma's Lemon Drizzle Cake

A bright loaf cake for afternoon tea.

You will need: 225 g butter, 225 g caster sugar, 4 eggs, 225 g self-raising
flour, 1 lemon (zested) and 85 g icing sugar.

Beat the butter and sugar until pale. Add the eggs one at a time, then fold
in the flour and zest. Bake at 180C for 45 minutes. Mix the lemon juice with
the icing sugar and pour it over the warm cake.`

func TestLLMExtractor_Live(t *testing.T) {
	testutil.SkipAITests(t)

	cfg := config.LLMConfig{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
	}
	if !llm.IsConfigured(cfg) {
		t.Skip("no LLM API key set")
	}
	provider, err := llm.NewProvider(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dish, err := NewLLMExtractor(provider).Extract(ctx, livePage)
	require.NoError(t, err)
	assert.Contains(t, dish.Title, "Lemon")
	assert.NotEmpty(t, dish.Ingredients)
	assert.NotEmpty(t, dish.Directions)
	assert.Empty(t, dish.ID)
}
