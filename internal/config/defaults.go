package config

import (
	_ "embed"
)

//go:embed defaults/pairtiles.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			MismatchDelaySeconds: 5,
			DefaultColumns:       4,
			DefaultPairs:         6,
		},
		Layout: LayoutConfig{
			MinTileSize: 8,
			MinGap:      1,
			MaxGap:      3,
		},
		Provider: ProviderConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr:            ":8000",
			CollectionsRoot: "./collections",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
