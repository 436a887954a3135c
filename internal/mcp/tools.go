package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func listSavedTool() mcp.Tool {
	return mcp.NewTool("dishdeck_list_saved",
		mcp.WithDescription("List saved private recipes, most recently saved first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 20, max: 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of results to skip for pagination (default: 0)"),
		),
	)
}

func searchSavedTool() mcp.Tool {
	return mcp.NewTool("dishdeck_search_saved",
		mcp.WithDescription("Search saved recipes by title substring (case-insensitive). When tags are given, every tag must be present."),
		mcp.WithString("query",
			mcp.Description("Title substring to match. Empty matches every title."),
		),
		mcp.WithArray("tags",
			mcp.Description("Tag values that must all be present, e.g. [\"vegan\", \"breakfast\"]"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 20, max: 100)"),
		),
	)
}

func getRecipeTool() mcp.Tool {
	return mcp.NewTool("dishdeck_get_recipe",
		mcp.WithDescription("Get a saved recipe with ingredients, directions and notes."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The recipe id"),
		),
	)
}

func saveRecipeTool() mcp.Tool {
	return mcp.NewTool("dishdeck_save_recipe",
		mcp.WithDescription("Save a new private recipe. It is prepended to the saved list with a generated id."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Recipe title"),
		),
		mcp.WithArray("ingredients",
			mcp.Description("Ingredients, one per entry, e.g. \"2 cups flour\""),
		),
		mcp.WithArray("directions",
			mcp.Description("Directions, one step per entry"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tag values such as vegan, breakfast, italian"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
		mcp.WithNumber("rating",
			mcp.Description("Rating from 0 to 10"),
		),
		mcp.WithString("original_url",
			mcp.Description("Where the recipe came from"),
		),
	)
}

func deleteRecipeTool() mcp.Tool {
	return mcp.NewTool("dishdeck_delete_recipe",
		mcp.WithDescription("Delete a saved recipe by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The recipe id"),
		),
	)
}
