// Package layout computes responsive board geometry from viewport
// constraints and tile count. Sizes are in abstract display units: the
// terminal presentation feeds character cells, a web consumer would feed
// pixels.
package layout

import "math"

// Config holds the layout tunables.
type Config struct {
	MinTileSize float64 // smallest legible tile
	MinGap      float64 // tightest spacing between tiles
	MaxGap      float64 // widest spacing between tiles
}

// DefaultConfig returns layout tunables suited to pixel-based viewports.
func DefaultConfig() Config {
	return Config{
		MinTileSize: 48,
		MinGap:      4,
		MaxGap:      16,
	}
}

// Spec is the derived board geometry. It is recomputed whenever tile count,
// column count, or viewport size changes, and never stored beyond that.
type Spec struct {
	Columns  int
	Rows     int
	TileSize float64
	Gap      float64
}

// Compute derives the grid geometry for n tiles laid out in the given number
// of columns within the available width and height. Width wins over height
// when they conflict: the tile size never exceeds the width-constrained
// size, so a cramped board overflows vertically rather than horizontally.
// Degenerate inputs yield a fallback spec at the minimum tile size instead
// of failing.
func Compute(cfg Config, n, columns int, availW, availH float64) Spec {
	if n <= 0 || columns <= 0 {
		return fallback(cfg, columns)
	}

	rows := (n + columns - 1) / columns
	gap := gapFor(cfg, columns)

	widthSize := (availW - gap*float64(columns-1)) / float64(columns)
	heightSize := (availH - gap*float64(rows-1)) / float64(rows)

	size := math.Min(widthSize, heightSize)
	if size < cfg.MinTileSize {
		size = cfg.MinTileSize
	}
	if size > widthSize {
		size = widthSize
	}

	if !isUsable(size) {
		return Spec{Columns: columns, Rows: rows, TileSize: cfg.MinTileSize, Gap: gap}
	}

	return Spec{Columns: columns, Rows: rows, TileSize: size, Gap: gap}
}

// gapFor picks a gap from a small discrete scale inversely related to the
// column count: denser boards get a tighter gap to preserve usable tile size.
func gapFor(cfg Config, columns int) float64 {
	var gap float64
	switch {
	case columns <= 2:
		gap = cfg.MaxGap
	case columns <= 4:
		gap = cfg.MaxGap * 0.75
	case columns <= 6:
		gap = cfg.MaxGap * 0.5
	default:
		gap = cfg.MinGap
	}
	return clampF(gap, cfg.MinGap, cfg.MaxGap)
}

func fallback(cfg Config, columns int) Spec {
	if columns <= 0 {
		columns = 1
	}
	return Spec{
		Columns:  columns,
		Rows:     0,
		TileSize: cfg.MinTileSize,
		Gap:      cfg.MinGap,
	}
}

func isUsable(size float64) bool {
	return size > 0 && !math.IsNaN(size) && !math.IsInf(size, 0)
}

// clampF restricts a value to be within [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
