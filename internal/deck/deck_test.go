package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/vkalinin/pairtiles/internal/content"
)

func testPairs(n int) []content.Pair {
	pairs := make([]content.Pair, n)
	for i := range pairs {
		key := fmt.Sprintf("pair-%d", i)
		pairs[i] = content.TwinPair(key, content.TextPayload(key))
	}
	return pairs
}

func TestBuildTileCounts(t *testing.T) {
	tests := []struct {
		name      string
		available int
		requested int
		wantTiles int
	}{
		{name: "exact request", available: 5, requested: 3, wantTiles: 6},
		{name: "request above available clamps", available: 4, requested: 10, wantTiles: 8},
		{name: "request below minimum clamps", available: 6, requested: 0, wantTiles: 4},
		{name: "negative request clamps", available: 6, requested: -3, wantTiles: 4},
		{name: "request all", available: 3, requested: 3, wantTiles: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			tiles, err := Build(rng, testPairs(tt.available), tt.requested)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			if len(tiles) != tt.wantTiles {
				t.Errorf("Build() produced %d tiles, want %d", len(tiles), tt.wantTiles)
			}
		})
	}
}

func TestBuildInsufficientPairs(t *testing.T) {
	for _, n := range []int{0, 1} {
		rng := rand.New(rand.NewSource(1))
		_, err := Build(rng, testPairs(n), 4)
		if !errors.Is(err, ErrInsufficientPairs) {
			t.Errorf("Build() with %d pairs: err = %v, want ErrInsufficientPairs", n, err)
		}
	}
}

func TestBuildPairKeysAppearTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tiles, err := Build(rng, testPairs(8), 5)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	counts := make(map[string]int)
	for _, tile := range tiles {
		counts[tile.PairKey]++
	}

	if len(counts) != 5 {
		t.Errorf("expected 5 distinct pair keys, got %d", len(counts))
	}
	for key, n := range counts {
		if n != 2 {
			t.Errorf("pair key %q appears %d times, want 2", key, n)
		}
	}
}

func TestBuildUniqueIDsAndHiddenState(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tiles, err := Build(rng, testPairs(6), 6)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	seen := make(map[int]bool)
	for _, tile := range tiles {
		if seen[tile.ID] {
			t.Errorf("duplicate tile id %d", tile.ID)
		}
		seen[tile.ID] = true
		if tile.State != Hidden {
			t.Errorf("tile %d starts in state %v, want Hidden", tile.ID, tile.State)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	original := []int{1, 2, 3, 4, 5, 6, 7, 8}
	shuffled := make([]int, len(original))
	copy(shuffled, original)

	shuffle(rng, shuffled)

	counts := make(map[int]int)
	for _, v := range shuffled {
		counts[v]++
	}
	for _, v := range original {
		if counts[v] != 1 {
			t.Errorf("element %d appears %d times after shuffle, want 1", v, counts[v])
		}
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	// With 12 elements and several attempts, an identity result every time
	// would mean the shuffle is not shuffling.
	rng := rand.New(rand.NewSource(3))
	changed := false
	for range 5 {
		xs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
		shuffle(rng, xs)
		for i, v := range xs {
			if i != v {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("shuffle never changed element order across 5 runs")
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	pairs := testPairs(5)
	want := make([]content.Pair, len(pairs))
	copy(want, pairs)

	rng := rand.New(rand.NewSource(11))
	if _, err := Build(rng, pairs, 3); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	for i := range pairs {
		if pairs[i].Key != want[i].Key {
			t.Errorf("Build() reordered the input slice at index %d", i)
		}
	}
}
