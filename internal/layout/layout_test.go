package layout

import (
	"math"
	"testing"
)

func TestComputeReferenceBoard(t *testing.T) {
	// 12 tiles in 4 columns on an 800x600 viewport.
	cfg := DefaultConfig()
	spec := Compute(cfg, 12, 4, 800, 600)

	if spec.Rows != 3 {
		t.Errorf("Rows = %d, want 3", spec.Rows)
	}
	if spec.Columns != 4 {
		t.Errorf("Columns = %d, want 4", spec.Columns)
	}

	widthConstrained := (800 - spec.Gap*3) / 4
	if spec.TileSize > widthConstrained {
		t.Errorf("TileSize = %v exceeds width-constrained size %v", spec.TileSize, widthConstrained)
	}
	if spec.TileSize < cfg.MinTileSize {
		t.Errorf("TileSize = %v below minimum %v", spec.TileSize, cfg.MinTileSize)
	}
}

func TestComputeRowCounts(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		columns  int
		wantRows int
	}{
		{name: "even grid", n: 12, columns: 4, wantRows: 3},
		{name: "partial last row", n: 10, columns: 4, wantRows: 3},
		{name: "single row", n: 3, columns: 4, wantRows: 1},
		{name: "single column", n: 5, columns: 1, wantRows: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Compute(DefaultConfig(), tt.n, tt.columns, 800, 600)
			if spec.Rows != tt.wantRows {
				t.Errorf("Compute(n=%d, c=%d).Rows = %d, want %d", tt.n, tt.columns, spec.Rows, tt.wantRows)
			}
		})
	}
}

func TestComputeHeightConstrainedBoard(t *testing.T) {
	// A short, wide viewport: the height-constrained size should win while
	// staying under the width-constrained size.
	cfg := Config{MinTileSize: 10, MinGap: 2, MaxGap: 8}
	spec := Compute(cfg, 8, 4, 2000, 300)

	heightConstrained := (300 - spec.Gap*1) / 2
	if math.Abs(spec.TileSize-heightConstrained) > 1e-9 {
		t.Errorf("TileSize = %v, want height-constrained %v", spec.TileSize, heightConstrained)
	}
}

func TestComputeWidthAlwaysWins(t *testing.T) {
	// Narrow viewport: even after the minimum-size clamp, the tile must not
	// exceed the width-constrained size.
	cfg := Config{MinTileSize: 100, MinGap: 2, MaxGap: 8}
	spec := Compute(cfg, 12, 4, 200, 2000)

	widthConstrained := (200 - spec.Gap*3) / 4
	if spec.TileSize > widthConstrained {
		t.Errorf("TileSize = %v exceeds width-constrained size %v", spec.TileSize, widthConstrained)
	}
}

func TestComputeMinimumSizeRescuesShortViewports(t *testing.T) {
	// Plenty of width, almost no height: the legibility floor applies and
	// the board overflows vertically.
	cfg := Config{MinTileSize: 20, MinGap: 2, MaxGap: 8}
	spec := Compute(cfg, 12, 4, 1000, 10)

	if spec.TileSize != 20 {
		t.Errorf("TileSize = %v, want minimum 20", spec.TileSize)
	}
}

func TestComputeDegenerateInputs(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		n       int
		columns int
		w, h    float64
	}{
		{name: "zero tiles", n: 0, columns: 4, w: 800, h: 600},
		{name: "zero columns", n: 12, columns: 0, w: 800, h: 600},
		{name: "negative columns", n: 12, columns: -2, w: 800, h: 600},
		{name: "zero viewport", n: 12, columns: 4, w: 0, h: 0},
		{name: "NaN viewport", n: 12, columns: 4, w: math.NaN(), h: 600},
		{name: "infinite viewport", n: 12, columns: 4, w: math.Inf(-1), h: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Compute(cfg, tt.n, tt.columns, tt.w, tt.h)
			if !isUsable(spec.TileSize) {
				t.Errorf("TileSize = %v, want a usable size", spec.TileSize)
			}
			if spec.TileSize < cfg.MinTileSize && spec.TileSize <= 0 {
				t.Errorf("TileSize = %v, want at least a positive fallback", spec.TileSize)
			}
		})
	}
}

func TestGapShrinksWithDensity(t *testing.T) {
	cfg := DefaultConfig()
	wide := gapFor(cfg, 2)
	medium := gapFor(cfg, 4)
	dense := gapFor(cfg, 8)

	if !(wide >= medium && medium >= dense) {
		t.Errorf("gap scale not inversely related to columns: %v, %v, %v", wide, medium, dense)
	}
	if dense < cfg.MinGap || wide > cfg.MaxGap {
		t.Errorf("gaps outside [%v, %v]: %v, %v", cfg.MinGap, cfg.MaxGap, dense, wide)
	}
}
