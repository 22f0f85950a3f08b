package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.pairtiles/config.yaml -> ./configs/pairtiles.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return applyDefaults(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return applyDefaults(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pairtiles.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return applyDefaults(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return applyDefaults(cfg), nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pairtiles", filename)
}

// applyDefaults fills zero fields that a partial config file left out.
func applyDefaults(cfg Config) Config {
	def := Default()

	if cfg.Game.MismatchDelaySeconds <= 0 {
		cfg.Game.MismatchDelaySeconds = def.Game.MismatchDelaySeconds
	}
	if cfg.Game.DefaultColumns <= 0 {
		cfg.Game.DefaultColumns = def.Game.DefaultColumns
	}
	if cfg.Game.DefaultPairs <= 0 {
		cfg.Game.DefaultPairs = def.Game.DefaultPairs
	}
	if cfg.Layout.MinTileSize <= 0 {
		cfg.Layout.MinTileSize = def.Layout.MinTileSize
	}
	if cfg.Layout.MinGap <= 0 {
		cfg.Layout.MinGap = def.Layout.MinGap
	}
	if cfg.Layout.MaxGap <= 0 {
		cfg.Layout.MaxGap = def.Layout.MaxGap
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = def.Provider.BaseURL
	}
	if cfg.Provider.TimeoutSeconds <= 0 {
		cfg.Provider.TimeoutSeconds = def.Provider.TimeoutSeconds
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.CollectionsRoot == "" {
		cfg.Server.CollectionsRoot = def.Server.CollectionsRoot
	}

	return cfg
}
