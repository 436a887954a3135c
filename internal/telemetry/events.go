package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/dishdeck/pkg/version"
)

// Event names - CLI
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
)

// Event names - deck
const (
	EventDishSwiped    = "dish_swiped"
	EventDishSaved     = "dish_saved"
	EventDeckRefreshed = "deck_refreshed"
	EventDeckExhausted = "deck_exhausted"
	EventDetailOpened  = "detail_opened"
)

// Event names - library
const (
	EventViewNavigated     = "view_navigated"
	EventRecipeCreated     = "recipe_created"
	EventRecipeUpdated     = "recipe_updated"
	EventRecipeDeleted     = "recipe_deleted"
	EventRecipeImported    = "recipe_imported"
	EventSearchPerformed   = "search_performed"
	EventFilterApplied     = "filter_applied"
	EventIngredientsCopied = "ingredients_copied"
	EventMCPToolCalled     = "mcp_tool_called"
)

// Version is set at compile time via ldflags.
var Version string

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	v := Version
	if v == "" {
		v = version.Short()
	}
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    v,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// --- CLI Tracking Methods ---

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(mode string, dishCount int) {
	props := baseProperties()
	props["mode"] = mode
	props["dish_count"] = dishCount
	c.Track(EventAppStarted, props)
}

// TrackAppExited tracks application exit.
func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64, swipes int) {
	props := baseProperties()
	props["mode"] = mode
	props["session_duration_ms"] = sessionDurationMs
	props["swipes"] = swipes
	c.Track(EventAppExited, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI errors by category, never by message.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackCLIHelpViewed tracks help output.
func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["arg_count"] = len(cliArgs)
	c.Track(EventCLIHelpViewed, props)
}

// --- Deck Tracking Methods ---

// TrackDishSwiped tracks a committed swipe.
func (c *posthogClient) TrackDishSwiped(direction string, tagCount int) {
	props := baseProperties()
	props["direction"] = direction
	props["tag_count"] = tagCount
	c.Track(EventDishSwiped, props)
}

// TrackDishSaved tracks the outcome of a background save.
func (c *posthogClient) TrackDishSaved(success bool) {
	props := baseProperties()
	props["success"] = success
	c.Track(EventDishSaved, props)
}

// TrackDeckRefreshed tracks a deck load.
func (c *posthogClient) TrackDeckRefreshed(dishCount int, failed bool, trigger string) {
	props := baseProperties()
	props["dish_count"] = dishCount
	props["failed"] = failed
	props["trigger"] = trigger
	c.Track(EventDeckRefreshed, props)
}

// TrackDeckExhausted tracks reaching the end of the deck.
func (c *posthogClient) TrackDeckExhausted(swipes int) {
	props := baseProperties()
	props["swipes"] = swipes
	c.Track(EventDeckExhausted, props)
}

// TrackDetailOpened tracks expanding a card to its detail view.
func (c *posthogClient) TrackDetailOpened(isPrivate bool) {
	props := baseProperties()
	props["is_private"] = isPrivate
	c.Track(EventDetailOpened, props)
}

// --- Library Tracking Methods ---

// TrackViewNavigated tracks tab switches.
func (c *posthogClient) TrackViewNavigated(viewName, previousView string) {
	props := baseProperties()
	props["view_name"] = viewName
	props["previous_view"] = previousView
	c.Track(EventViewNavigated, props)
}

// TrackRecipeCreated tracks a new recipe. origin is "form", "import" or "mcp".
func (c *posthogClient) TrackRecipeCreated(privacy, origin string) {
	props := baseProperties()
	props["privacy"] = privacy
	props["origin"] = origin
	c.Track(EventRecipeCreated, props)
}

// TrackRecipeUpdated tracks an edited recipe.
func (c *posthogClient) TrackRecipeUpdated() {
	c.Track(EventRecipeUpdated, baseProperties())
}

// TrackRecipeDeleted tracks a deleted recipe.
func (c *posthogClient) TrackRecipeDeleted(surface string) {
	props := baseProperties()
	props["surface"] = surface
	c.Track(EventRecipeDeleted, props)
}

// TrackRecipeImported tracks a URL or file import.
func (c *posthogClient) TrackRecipeImported(method string, success bool) {
	props := baseProperties()
	props["method"] = method
	props["success"] = success
	c.Track(EventRecipeImported, props)
}

// TrackSearchPerformed tracks library searches. Only the query length is sent.
func (c *posthogClient) TrackSearchPerformed(queryLength, resultCount int, surface string) {
	props := baseProperties()
	props["query_length"] = queryLength
	props["result_count"] = resultCount
	props["surface"] = surface
	c.Track(EventSearchPerformed, props)
}

// TrackFilterApplied tracks tag filter changes.
func (c *posthogClient) TrackFilterApplied(filterCount int) {
	props := baseProperties()
	props["filter_count"] = filterCount
	c.Track(EventFilterApplied, props)
}

// TrackIngredientsCopied tracks copying ingredients to the clipboard.
func (c *posthogClient) TrackIngredientsCopied() {
	c.Track(EventIngredientsCopied, baseProperties())
}

// TrackMCPToolCalled tracks MCP tool invocations.
func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	props := baseProperties()
	props["tool_name"] = toolName
	props["duration_ms"] = durationMs
	props["success"] = success
	c.Track(EventMCPToolCalled, props)
}

// --- No-op implementations ---

func (c *noopClient) TrackAppStarted(mode string, dishCount int)                                  {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64, swipes int)             {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string)                     {}
func (c *noopClient) TrackDishSwiped(direction string, tagCount int)                              {}
func (c *noopClient) TrackDishSaved(success bool)                                                 {}
func (c *noopClient) TrackDeckRefreshed(dishCount int, failed bool, trigger string)               {}
func (c *noopClient) TrackDeckExhausted(swipes int)                                               {}
func (c *noopClient) TrackDetailOpened(isPrivate bool)                                            {}
func (c *noopClient) TrackViewNavigated(viewName, previousView string)                            {}
func (c *noopClient) TrackRecipeCreated(privacy, origin string)                                   {}
func (c *noopClient) TrackRecipeUpdated()                                                         {}
func (c *noopClient) TrackRecipeDeleted(surface string)                                           {}
func (c *noopClient) TrackRecipeImported(method string, success bool)                             {}
func (c *noopClient) TrackSearchPerformed(queryLength, resultCount int, surface string)           {}
func (c *noopClient) TrackFilterApplied(filterCount int)                                          {}
func (c *noopClient) TrackIngredientsCopied()                                                     {}
func (c *noopClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool)          {}
