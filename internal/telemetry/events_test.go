package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstants(t *testing.T) {
	// CLI events
	assert.Equal(t, "app_started", EventAppStarted)
	assert.Equal(t, "app_exited", EventAppExited)
	assert.Equal(t, "cli_command_executed", EventCLICommandExecuted)
	assert.Equal(t, "cli_error_occurred", EventCLIErrorOccurred)

	// Deck events
	assert.Equal(t, "dish_swiped", EventDishSwiped)
	assert.Equal(t, "dish_saved", EventDishSaved)
	assert.Equal(t, "deck_refreshed", EventDeckRefreshed)
	assert.Equal(t, "deck_exhausted", EventDeckExhausted)

	// Library events
	assert.Equal(t, "recipe_created", EventRecipeCreated)
	assert.Equal(t, "recipe_imported", EventRecipeImported)
	assert.Equal(t, "search_performed", EventSearchPerformed)
	assert.Equal(t, "mcp_tool_called", EventMCPToolCalled)
}
