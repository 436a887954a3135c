package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/source"
	"github.com/spf13/cobra"
)

var (
	deckTags []string
	deckJSON bool
	deckDemo bool
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Fetch and print the current deck",
	Long: `Fetch the public dish deck from the dish server and print it in
deck order.

Examples:
  # Print the deck
  dishdeck deck

  # Only vegan breakfasts, as JSON
  dishdeck deck --tag vegan --tag breakfast --json`,
	Args: cobra.NoArgs,
	RunE: runDeck,
}

func init() {
	deckCmd.Flags().StringSliceVarP(&deckTags, "tag", "t", nil, "Only dishes carrying every given tag")
	deckCmd.Flags().BoolVar(&deckJSON, "json", false, "Print the deck as JSON")
	deckCmd.Flags().BoolVar(&deckDemo, "demo", false, "Print the built-in sample deck")
}

func runDeck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var dishes []models.Dish
	if deckDemo {
		dishes, _ = source.Samples().FetchAll(ctx)
	} else {
		cfg, err := config.Load()
		if err != nil {
			return trackCLIError("deck", fmt.Errorf("load config: %w", err))
		}
		remote := source.NewHTTPSource(cfg.Remote.BaseURL, cfg.Remote.Timeout, cfg.Remote.RequestsPerMinute)
		remote.Tags = models.NormalizeTags(deckTags)

		dishes, err = remote.FetchAll(ctx)
		if err != nil {
			return trackCLIError("deck", fmt.Errorf("dish server %s: %w", remote.BaseURL(), err))
		}
	}

	if deckJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dishes)
	}
	printDeck(os.Stdout, dishes)
	return nil
}

// printDeck writes one block per dish in deck order.
func printDeck(w io.Writer, dishes []models.Dish) {
	if len(dishes) == 0 {
		_, _ = fmt.Fprintln(w, "The deck is empty.")
		return
	}

	_, _ = fmt.Fprintf(w, "DECK (%d dishes)\n", len(dishes))
	_, _ = fmt.Fprintln(w, "──────────────────────────────────────────────────")
	for i, d := range dishes {
		_, _ = fmt.Fprintf(w, "%3d. %s\n", i+1, d.DisplayTitle())
		meta := []string{d.RatingLabel()}
		if d.Likes > 0 {
			meta = append(meta, fmt.Sprintf("♥ %d", d.Likes))
		}
		_, _ = fmt.Fprintf(w, "     %s\n", strings.Join(meta, "  "))
		if len(d.Tags) > 0 {
			_, _ = fmt.Fprintf(w, "     #%s\n", strings.Join(d.Tags, " #"))
		}
	}
}
