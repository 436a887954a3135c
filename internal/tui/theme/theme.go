// Package theme provides color theming for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Background colors
	Background lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor
	Overlay    lipgloss.AdaptiveColor

	// Text colors
	Text          lipgloss.AdaptiveColor
	TextMuted     lipgloss.AdaptiveColor
	TextHighlight lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// Swipe badges
	Like lipgloss.AdaptiveColor
	Nope lipgloss.AdaptiveColor

	// Filter category colors
	TagDietary  lipgloss.AdaptiveColor
	TagMacros   lipgloss.AdaptiveColor
	TagMealType lipgloss.AdaptiveColor
	TagCuisine  lipgloss.AdaptiveColor
}

// KitchenTheme is the default warm color scheme.
var KitchenTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FF7A45"}, // Paprika
	Secondary: lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#A3E635"}, // Basil
	Accent:    lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}, // Saffron

	Background: lipgloss.AdaptiveColor{Light: "#FFFBF5", Dark: "#14110F"},
	Surface:    lipgloss.AdaptiveColor{Light: "#FAF3E8", Dark: "#1F1A17"},
	Overlay:    lipgloss.AdaptiveColor{Light: "#EFE5D6", Dark: "#2E2723"},

	Text:          lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5EFE6"},
	TextMuted:     lipgloss.AdaptiveColor{Light: "#78716C", Dark: "#8A817A"},
	TextHighlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},

	Success: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
	Warning: lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
	Error:   lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
	Info:    lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"},

	Like: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"},
	Nope: lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"},

	TagDietary:  lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#84CC16"}, // Lime
	TagMacros:   lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}, // Violet
	TagMealType: lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}, // Amber
	TagCuisine:  lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"}, // Pink
}

// MidnightTheme is a cooler alternative for dark terminals.
var MidnightTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
	Secondary: lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"},
	Accent:    lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"},

	Background: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0B1120"},
	Surface:    lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#111827"},
	Overlay:    lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#1F2937"},

	Text:          lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#E2E8F0"},
	TextMuted:     lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#64748B"},
	TextHighlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},

	Success: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
	Warning: lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
	Error:   lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
	Info:    lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"},

	Like: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"},
	Nope: lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"},

	TagDietary:  lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"},
	TagMacros:   lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"},
	TagMealType: lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"},
	TagCuisine:  lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"},
}

// Current is the active theme (can be changed at runtime).
var Current = KitchenTheme

// GetTagColor returns the color for a filter category name.
func GetTagColor(category string) lipgloss.AdaptiveColor {
	switch category {
	case "Dietary":
		return Current.TagDietary
	case "Macronutrients":
		return Current.TagMacros
	case "Meal Type":
		return Current.TagMealType
	case "Cuisine":
		return Current.TagCuisine
	default:
		return Current.Overlay
	}
}
