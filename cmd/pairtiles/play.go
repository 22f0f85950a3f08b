package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vkalinin/pairtiles/internal/content"
	"github.com/vkalinin/pairtiles/internal/deck"
	"github.com/vkalinin/pairtiles/internal/platform/tui"
	"github.com/vkalinin/pairtiles/internal/provider"
	"github.com/vkalinin/pairtiles/internal/storage"
)

var (
	flagPairs    int
	flagColumns  int
	flagProvider string
)

var playCmd = &cobra.Command{
	Use:   "play [collection]",
	Short: "Play a collection",
	Long: `Start a game. With no argument an interactive picker shows the
collections the content server offers; with a collection id the board
opens directly.

Controls:
  Arrows/hjkl - Move cursor
  Enter/Space - Flip tile
  +/-         - More/fewer columns
  R           - Restart
  Esc/B       - Back to picker
  Q/Ctrl+C    - Quit

Examples:
  pairtiles play
  pairtiles play night_sky
  pairtiles play night_sky --pairs 8 --columns 4
  pairtiles play --provider http://example.com:8000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPairs, "pairs", 0, "Number of pairs to play (0 = configured default)")
	playCmd.Flags().IntVar(&flagColumns, "columns", 0, "Preferred column count (0 = configured default)")
	playCmd.Flags().StringVar(&flagProvider, "provider", "", "Content server base URL (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagProvider != "" {
		cfg.Provider.BaseURL = flagProvider
	}

	// Get terminal size early so the first layout is right
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	prov := provider.NewHTTP(cfg.Provider.BaseURL, cfg.Provider.Timeout())

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.AppOptions{
		Pairs:   flagPairs,
		Columns: flagColumns,
		Seed:    flagSeed,
	}

	if len(args) == 0 {
		if runErr := tui.RunApp(cfg, prov, store, opts, width, height); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Direct play: resolve the collection and fetch its pairs up front.
	collectionID := args[0]
	col, pairs, err := fetchCollection(prov, collectionID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: unknown collection %q\n", collectionID)
			fmt.Fprintln(os.Stderr, "Run 'pairtiles collections' to see what the server offers.")
		} else {
			fmt.Fprintf(os.Stderr, "Error reaching content server: %v\n", err)
		}
		os.Exit(1)
	}

	if runErr := tui.RunBoard(cfg, store, col, pairs, opts, width, height); runErr != nil {
		if errors.Is(runErr, deck.ErrInsufficientPairs) {
			fmt.Fprintf(os.Stderr, "Error: collection %q does not have enough pairs to play\n", collectionID)
		} else {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		os.Exit(1)
	}
}

// fetchCollection resolves a collection id into its summary and pairs.
func fetchCollection(prov provider.Provider, id string) (provider.CollectionSummary, []content.Pair, error) {
	ctx := context.Background()

	cols, err := prov.Collections(ctx)
	if err != nil {
		return provider.CollectionSummary{}, nil, err
	}

	var col provider.CollectionSummary
	found := false
	for _, c := range cols {
		if c.ID == id {
			col = c
			found = true
			break
		}
	}
	if !found {
		return provider.CollectionSummary{}, nil, provider.ErrNotFound
	}

	pairs, err := prov.Pairs(ctx, id)
	if err != nil {
		return provider.CollectionSummary{}, nil, err
	}
	return col, pairs, nil
}
