package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vkalinin/pairtiles/internal/server"
)

var (
	flagServeAddr string
	flagServeRoot string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP content server",
	Long: `Start the HTTP server that feeds collections to the game.

Collections live on disk under the collections root, one directory per
collection. Image collections hold image files directly; text
collections hold markdown or text files under cards/; a pairs.yaml
manifest can define pairs explicitly, including mixed image-to-text
pairs. A description.json or description.md adds metadata.

Endpoints:
  GET /health
  GET /collections
  GET /collections/{id}/pairs
  GET /collections/{id}/assets/{filename}

Examples:
  pairtiles serve
  pairtiles serve --addr :9000 --root ./my-collections`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagServeRoot, "root", "", "Collections root directory (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	root := cfg.Server.CollectionsRoot
	if flagServeRoot != "" {
		root = flagServeRoot
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: collections root %q is not a directory\n", root)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pairtiles-http",
	})

	srv := server.New(server.NewCatalog(root), logger)

	fmt.Printf("Serving collections from %s on %s\n", root, addr)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.Start(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
