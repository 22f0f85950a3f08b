package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vkalinin/pairtiles/internal/platform/tui"
	"github.com/vkalinin/pairtiles/internal/session"
	"github.com/vkalinin/pairtiles/internal/storage"
)

var resultsCmd = &cobra.Command{
	Use:   "results [collection]",
	Short: "Show best results",
	Long: `Display best results. With a collection id the top 10 results print
directly; with no argument an interactive browser opens over every
collection you have played.

Examples:
  pairtiles results
  pairtiles results night_sky`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func runResults(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}

		if runErr := tui.RunResults(store, width, height); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error showing results: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	collectionID := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.BestResults(collectionID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Results - %s\n", collectionID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pairtiles play %s' to record the first one!\n", collectionID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %s\n", "Rank", "Pairs", "Attempts", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %s\n", "----", "-----", "--------", "----", "----")

	// Print results
	for i, entry := range results {
		elapsed := session.FormatElapsed(time.Duration(entry.DurationSecs) * time.Second)
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-9d  %-6s  %s\n", i+1, entry.Pairs, entry.Attempts, elapsed, dateStr)
	}
}
