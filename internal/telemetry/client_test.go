package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedID string

func (f fixedID) GetOrCreateTrackingID() string { return string(f) }

func TestNew_DisabledByEnvVar(t *testing.T) {
	t.Setenv("DISHDECK_TELEMETRY_TRACKING_ENABLED", "false")

	client := New(fixedID("abc"))
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient when disabled")
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	originalKey := PostHogAPIKey
	PostHogAPIKey = ""
	defer func() { PostHogAPIKey = originalKey }()

	client := New(nil)
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient without API key")
	assert.Empty(t, client.GetTrackingID())
}

func TestNoopClient_DoesNotPanic(t *testing.T) {
	client := NewNoop()

	client.Track("test_event", map[string]interface{}{"key": "value"})
	client.TrackAppStarted("tui", 12)
	client.TrackAppExited("tui", 5000, 7)
	client.TrackCLICommandExecuted("import", true, 100)
	client.TrackCLIError("import", "network_error")
	client.TrackCLIHelpViewed("root", []string{"--help"})

	client.TrackDishSwiped("right", 3)
	client.TrackDishSaved(true)
	client.TrackDeckRefreshed(10, false, "startup")
	client.TrackDeckExhausted(10)
	client.TrackDetailOpened(false)

	client.TrackViewNavigated("library", "deck")
	client.TrackRecipeCreated("private", "form")
	client.TrackRecipeUpdated()
	client.TrackRecipeDeleted("tui")
	client.TrackRecipeImported("url", true)
	client.TrackSearchPerformed(4, 2, "tui")
	client.TrackFilterApplied(2)
	client.TrackIngredientsCopied()
	client.TrackMCPToolCalled("dishdeck_list_saved", 12, true)

	client.Close()
}

func TestBaseProperties(t *testing.T) {
	props := baseProperties()

	assert.Contains(t, props, "os")
	assert.Contains(t, props, "arch")
	assert.Contains(t, props, "version")
	assert.Contains(t, props, "dev_build")
}
