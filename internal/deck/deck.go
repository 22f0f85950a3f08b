// Package deck builds shuffled tile decks from card pair definitions.
package deck

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vkalinin/pairtiles/internal/content"
)

// ErrInsufficientPairs is returned when a collection cannot field a playable
// board. It is non-retryable: the collection simply has too little content.
var ErrInsufficientPairs = errors.New("deck: need at least 2 pairs")

// MinPairs is the smallest playable board.
const MinPairs = 2

// TileState tracks a tile's visibility on the board.
type TileState int

const (
	Hidden TileState = iota
	Visible
	Matched
)

// String returns a human-readable name for the state.
func (s TileState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Tile is one face-down/face-up card instance on the board.
// Two tiles share a PairKey per matchable pair. State is mutated only by
// the session's reveal machinery.
type Tile struct {
	ID      int
	Payload content.Payload
	PairKey string
	State   TileState
}

// Build selects up to requested pairs from the available ones and expands
// them into a shuffled tile deck: exactly two tiles per selected pair, with
// unique ids. Requested counts below MinPairs or above the available count
// are clamped, never rejected. Fewer than MinPairs available pairs is an
// error and no deck is produced.
func Build(rng *rand.Rand, pairs []content.Pair, requested int) ([]Tile, error) {
	if len(pairs) < MinPairs {
		return nil, fmt.Errorf("%w, have %d", ErrInsufficientPairs, len(pairs))
	}

	count := requested
	if count < MinPairs {
		count = MinPairs
	}
	if count > len(pairs) {
		count = len(pairs)
	}

	// Shuffle a copy so the caller's slice stays untouched, then take the
	// first count pairs as the uniform selection.
	picked := make([]content.Pair, len(pairs))
	copy(picked, pairs)
	shuffle(rng, picked)
	picked = picked[:count]

	tiles := make([]Tile, 0, count*2)
	for _, p := range picked {
		tiles = append(tiles, Tile{ID: len(tiles), Payload: p.A, PairKey: p.Key})
		tiles = append(tiles, Tile{ID: len(tiles), Payload: p.B, PairKey: p.Key})
	}

	// Second shuffle so the two tiles of a pair are not adjacent.
	shuffle(rng, tiles)

	return tiles, nil
}

// shuffle performs an unbiased Fisher-Yates shuffle in place.
func shuffle[T any](rng *rand.Rand, xs []T) {
	for i := len(xs) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
