// pairtiles is a memory matching game played in the terminal.
//
// Usage:
//
//	pairtiles play [collection]   - Play (shows the collection picker when no collection is given)
//	pairtiles collections         - List collections offered by the content server
//	pairtiles results [collection]- Show best results
//	pairtiles serve               - Start the HTTP content server
//	pairtiles serve-ssh           - Start the SSH game server for remote play
//
// Global flags:
//
//	--config <path> - Path to config YAML (default: ~/.pairtiles/config.yaml)
//	--db <path>     - Set database path (default: ~/.pairtiles/results.db)
//	--seed <value>  - Set RNG seed for reproducible decks
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vkalinin/pairtiles/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagSeed   int64
)

func main() {
	// Local overrides for provider URL and server settings, if present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairtiles",
	Short: "Pairtiles - A memory matching game in your terminal",
	Long: `Pairtiles is a terminal memory game: flip tiles two at a time and
find all the matching pairs in as few attempts as you can.

Card content comes from collections served over HTTP, so the same
server can feed local play, remote SSH play, and web clients.

Available commands:
  play         - Play a collection (interactive picker when none given)
  collections  - List collections offered by the content server
  results      - View best results
  serve        - Start the HTTP content server
  serve-ssh    - Start the SSH game server

Examples:
  pairtiles play
  pairtiles play night_sky --pairs 8
  pairtiles collections
  pairtiles results night_sky
  pairtiles serve --root ./collections
  pairtiles serve-ssh --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pairtiles/results.db", "Path to results database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveSSHCmd)
}

// loadConfig resolves the effective configuration, with the PAIRTILES_BASE_URL
// environment variable taking precedence over the config file.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = config.Default()
	}
	if base := os.Getenv("PAIRTILES_BASE_URL"); base != "" {
		cfg.Provider.BaseURL = base
	}
	return cfg
}
