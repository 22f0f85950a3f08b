package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkalinin/pairtiles/internal/platform/tui"
	"github.com/vkalinin/pairtiles/internal/provider"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveSSHCmd = &cobra.Command{
	Use:   "serve-ssh",
	Short: "Start the SSH game server",
	Long: `Start an SSH server that lets users connect and play remotely.

Each SSH connection gets its own session with a collection picker.
Results are stored per-server (all users share the same board).
The server needs a reachable content server for collections; point
it at one with --provider or the config file.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pairtiles/host_key

Examples:
  pairtiles serve-ssh                           # Listen on :23235 with auto-generated key
  pairtiles serve-ssh --ssh :2222               # Listen on port 2222
  pairtiles serve-ssh --host-key ./my_host_key  # Use specific host key
  pairtiles serve-ssh --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServeSSH,
}

func init() {
	serveSSHCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveSSHCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveSSHCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveSSHCmd.Flags().StringVar(&flagProvider, "provider", "", "Content server base URL (overrides config)")
}

func runServeSSH(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig()
	if flagProvider != "" {
		gameCfg.Provider.BaseURL = flagProvider
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	prov := provider.NewHTTP(gameCfg.Provider.BaseURL, gameCfg.Provider.Timeout())

	server, err := tui.NewSSHServer(cfg, gameCfg, prov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting pairtiles SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
