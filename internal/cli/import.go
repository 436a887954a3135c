package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/spf13/cobra"
)

var (
	importPublic bool
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <url|file>",
	Short: "Import a recipe from a web page or file",
	Long: `Import a recipe from a web page or a local file.

Web pages are read from their schema.org Recipe data when present. Pages
without structured data are passed to an LLM when ANTHROPIC_API_KEY or
OPENAI_API_KEY is set. Local files may be markdown (with YAML
frontmatter), JSON or saved HTML pages.

Imported recipes are saved privately unless --public is given, in which
case they are published to the dish server.

Examples:
  dishdeck import https://cooking.example/recipes/shakshuka
  dishdeck import ./grandmas-lasagna.md --public
  dishdeck import ./page.html --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importPublic, "public", false, "Publish to the dish server instead of saving privately")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print the imported recipe without saving it")
}

func isURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("import", fmt.Errorf("load config: %w", err))
	}

	dish, method, err := importRecipe(ctx, cfg, target)
	telemetryClient.TrackRecipeImported(method, err == nil)
	if err != nil {
		return trackCLIError("import", fmt.Errorf("import %s: %w", target, err))
	}

	fmt.Printf("Found: %s\n", dish.DisplayTitle())
	fmt.Printf("  %d ingredients, %d steps\n", len(dish.Ingredients), len(dish.Directions))

	if importDryRun {
		fmt.Println()
		fmt.Println(dish.Markdown())
		return nil
	}

	svc, err := openServices(cfg)
	if err != nil {
		return trackCLIError("import", err)
	}
	defer svc.Close()

	if importPublic {
		published, err := svc.remote.Publish(ctx, *dish)
		if err != nil {
			return trackCLIError("import", fmt.Errorf("publish to dish server: %w", err))
		}
		telemetryClient.TrackRecipeCreated(string(models.PrivacyPublic), "import")
		fmt.Printf("Published as %s\n", published.ID)
		return nil
	}

	created, err := svc.library.Create(ctx, *dish)
	if err != nil {
		return trackCLIError("import", fmt.Errorf("save recipe: %w", err))
	}
	telemetryClient.TrackRecipeCreated(string(models.PrivacyPrivate), "import")
	fmt.Printf("Saved as %s\n", created.ID)
	return nil
}

func importRecipe(ctx context.Context, cfg *config.Config, target string) (*models.Dish, string, error) {
	imp := newImporter(cfg)
	if isURL(target) {
		dish, err := imp.Import(ctx, target)
		return dish, "url", err
	}
	dish, err := imp.ImportFile(ctx, target)
	return dish, "file", err
}
