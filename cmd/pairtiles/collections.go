package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkalinin/pairtiles/internal/provider"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections offered by the content server",
	Long: `Shows every collection the content server offers, with its pair count.

Examples:
  pairtiles collections
  pairtiles collections --provider http://example.com:8000`,
	Run: runCollections,
}

func init() {
	collectionsCmd.Flags().StringVar(&flagProvider, "provider", "", "Content server base URL (overrides config)")
}

func runCollections(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagProvider != "" {
		cfg.Provider.BaseURL = flagProvider
	}

	prov := provider.NewHTTP(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	cols, err := prov.Collections(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reaching content server at %s: %v\n", cfg.Provider.BaseURL, err)
		os.Exit(1)
	}

	if len(cols) == 0 {
		fmt.Println("The server has no collections.")
		return
	}

	fmt.Println("Available collections:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range cols {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Pairs", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "-----", "-----")

	// Print collections
	for _, c := range cols {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, c.ID, c.PairCount, c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pairtiles play <id>' to play a collection.")
}
