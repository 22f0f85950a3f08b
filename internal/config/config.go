// Package config provides YAML-based configuration loading for the
// pairtiles platform.
package config

import "time"

// Config is the root configuration document.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Layout   LayoutConfig   `yaml:"layout"`
	Provider ProviderConfig `yaml:"provider"`
	Server   ServerConfig   `yaml:"server"`
}

// GameConfig tunes the session engine.
type GameConfig struct {
	// MismatchDelaySeconds is how long a mismatched pair stays revealed.
	MismatchDelaySeconds int `yaml:"mismatch_delay_seconds"`
	DefaultColumns       int `yaml:"default_columns"`
	DefaultPairs         int `yaml:"default_pairs"`
}

// MismatchDelay returns the configured cooldown as a duration.
func (g GameConfig) MismatchDelay() time.Duration {
	return time.Duration(g.MismatchDelaySeconds) * time.Second
}

// LayoutConfig tunes the board geometry, in display units of the consuming
// presentation (terminal cells for the TUI).
type LayoutConfig struct {
	MinTileSize float64 `yaml:"min_tile_size"`
	MinGap      float64 `yaml:"min_gap"`
	MaxGap      float64 `yaml:"max_gap"`
}

// ProviderConfig points the game at a content server.
type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// ServerConfig configures the content-provider HTTP service.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	CollectionsRoot string `yaml:"collections_root"`
}
