package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/manifest"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	savedQuery  string
	savedTags   []string
	removeForce bool
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Browse and manage your private recipes",
	Long: `Browse and manage the private recipe list.

Dishes swiped right in the deck and recipes created privately end up here.`,
}

var savedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved recipes (alias: ls)",
	Long: `List saved recipes, newest first.

Examples:
  # Everything
  dishdeck saved list

  # Titles containing "curry" tagged vegan
  dishdeck saved list --query curry --tag vegan`,
	Args: cobra.NoArgs,
	RunE: runSavedList,
}

var savedShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedShow,
}

var savedRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved recipe (alias: rm)",
	Args:    cobra.ExactArgs(1),
	RunE:    runSavedRemove,
}

var savedExportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the saved recipes to a recipe box file",
	Long: `Write every saved recipe to dishdeck.json in dir (default: the
current directory). The file can be restored on another machine with
'dishdeck saved restore'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSavedExport,
}

var savedRestoreCmd = &cobra.Command{
	Use:   "restore [dir]",
	Short: "Add recipes from a recipe box file",
	Long: `Read dishdeck.json from dir (default: the current directory) and
add every recipe whose id is not already saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSavedRestore,
}

func init() {
	savedListCmd.Flags().StringVarP(&savedQuery, "query", "q", "", "Only titles containing this text")
	savedListCmd.Flags().StringSliceVarP(&savedTags, "tag", "t", nil, "Only recipes carrying every given tag")
	savedRemoveCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedShowCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedExportCmd)
	savedCmd.AddCommand(savedRestoreCmd)
}

func boxDir(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

func runSavedExport(cmd *cobra.Command, args []string) error {
	svc, err := openLibrary("export")
	if err != nil {
		return err
	}
	defer svc.Close()

	dishes, err := svc.library.List(cmd.Context())
	if err != nil {
		return trackCLIError("export", fmt.Errorf("list saved recipes: %w", err))
	}

	dir := boxDir(args)
	if err := manifest.Write(dir, manifest.New(dishes)); err != nil {
		return trackCLIError("export", err)
	}
	fmt.Printf("Exported %d recipes to %s\n", len(dishes), manifest.Path(dir))
	return nil
}

func runSavedRestore(cmd *cobra.Command, args []string) error {
	dir := boxDir(args)
	box, err := manifest.Read(dir)
	if err != nil {
		return trackCLIError("restore", err)
	}
	if box == nil {
		return trackCLIError("restore", fmt.Errorf("%s does not exist", manifest.Path(dir)))
	}

	svc, err := openLibrary("restore")
	if err != nil {
		return err
	}
	defer svc.Close()

	added, err := restoreRecipes(cmd.Context(), svc.library, box)
	if err != nil {
		return trackCLIError("restore", fmt.Errorf("restore recipes: %w", err))
	}
	fmt.Printf("Restored %d of %d recipes\n", added, box.RecipeCount())
	return nil
}

// restoreRecipes adds the box's recipes that are not saved yet and
// returns how many were added.
func restoreRecipes(ctx context.Context, lib *saved.Library, box *manifest.RecipeBox) (int, error) {
	added := 0
	for _, d := range box.Recipes {
		ok, err := lib.AddIfAbsent(ctx, d)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func openLibrary(cmdName string) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, trackCLIError(cmdName, fmt.Errorf("load config: %w", err))
	}
	svc, err := openServices(cfg)
	if err != nil {
		return nil, trackCLIError(cmdName, err)
	}
	return svc, nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	svc, err := openLibrary("list")
	if err != nil {
		return err
	}
	defer svc.Close()

	dishes, err := svc.library.Search(cmd.Context(), savedQuery, models.NormalizeTags(savedTags))
	if err != nil {
		return trackCLIError("list", fmt.Errorf("list saved recipes: %w", err))
	}
	if savedQuery != "" || len(savedTags) > 0 {
		telemetryClient.TrackSearchPerformed(len(savedQuery), len(dishes), "cli")
	}

	printSaved(os.Stdout, dishes, time.Now())
	return nil
}

// printSaved writes the saved-recipe listing.
func printSaved(w io.Writer, dishes []models.Dish, now time.Time) {
	if len(dishes) == 0 {
		_, _ = fmt.Fprintln(w, "No saved recipes.")
		_, _ = fmt.Fprintln(w, "\nSwipe right in 'dishdeck' or run 'dishdeck import <url>' to add one.")
		return
	}

	_, _ = fmt.Fprintf(w, "SAVED RECIPES (%d)\n", len(dishes))
	_, _ = fmt.Fprintln(w, "──────────────────────────────────────────────────")
	for _, d := range dishes {
		_, _ = fmt.Fprintf(w, "  %s\n", d.DisplayTitle())
		_, _ = fmt.Fprintf(w, "    id: %s\n", d.ID)
		line := d.RatingLabel()
		if !d.CreatedAt.IsZero() {
			line += "  •  saved " + formatTimeSince(d.CreatedAt, now)
		}
		_, _ = fmt.Fprintf(w, "    %s\n", line)
		if len(d.Tags) > 0 {
			_, _ = fmt.Fprintf(w, "    #%s\n", strings.Join(d.Tags, " #"))
		}
		_, _ = fmt.Fprintln(w)
	}
}

func runSavedShow(cmd *cobra.Command, args []string) error {
	svc, err := openLibrary("show")
	if err != nil {
		return err
	}
	defer svc.Close()

	dish, err := getSaved(cmd.Context(), svc.library, args[0])
	if err != nil {
		return trackCLIError("show", err)
	}

	out, err := glamour.Render(dish.Markdown(), "auto")
	if err != nil {
		fmt.Println(dish.Markdown())
		return nil
	}
	fmt.Print(out)
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	svc, err := openLibrary("remove")
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	dish, err := getSaved(ctx, svc.library, args[0])
	if err != nil {
		return trackCLIError("remove", err)
	}

	if !removeForce && !confirmRemove(os.Stdout, dish) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := svc.library.Delete(ctx, dish.ID); err != nil {
		if errors.Is(err, saved.ErrNotFound) {
			return trackCLIError("remove", fmt.Errorf("recipe '%s' not found", dish.ID))
		}
		return trackCLIError("remove", fmt.Errorf("remove recipe: %w", err))
	}
	telemetryClient.TrackRecipeDeleted("cli")

	fmt.Printf("Removed %s\n", dish.DisplayTitle())
	return nil
}

func getSaved(ctx context.Context, lib *saved.Library, id string) (*models.Dish, error) {
	dish, err := lib.Get(ctx, id)
	if errors.Is(err, saved.ErrNotFound) {
		return nil, fmt.Errorf("recipe '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return dish, nil
}

// confirmRemove asks for confirmation on stdin.
func confirmRemove(w io.Writer, dish *models.Dish) bool {
	_, _ = fmt.Fprintf(w, "\nYou are about to remove: %s\n", dish.DisplayTitle())
	_, _ = fmt.Fprintln(w, "This action cannot be undone.")
	_, _ = fmt.Fprint(w, "\nAre you sure? [y/N]: ")

	var response string
	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y" || response == "yes" || response == "Yes"
}

// formatTimeSince formats the time between t and now in a human-readable way.
func formatTimeSince(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
