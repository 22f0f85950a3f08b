// Package session implements the memory game session engine. It owns tile
// state, enforces the two-revealed-at-a-time reveal protocol with its
// mismatch cooldown, tracks the play clock, derives the board geometry, and
// exposes a read-only view model that is consistent after every mutation.
//
// The engine is single-threaded and event-driven: all mutations happen in
// response to discrete calls (Start, Select, ResolveMismatch, Resize,
// SetColumns) and each runs to completion. Deferred work is delegated to the
// caller: when a mismatch needs to be hidden later, Select hands back a
// generation token, the platform schedules the delay, and ResolveMismatch
// ignores tokens that a later event has superseded. A leaked timer can
// therefore never mutate a replaced session.
package session

import (
	"math/rand"
	"time"

	"github.com/vkalinin/pairtiles/internal/content"
	"github.com/vkalinin/pairtiles/internal/deck"
	"github.com/vkalinin/pairtiles/internal/layout"
)

// Config carries the engine tunables.
type Config struct {
	// MismatchDelay is how long a mismatched pair stays revealed before
	// flipping back. The source product uses 5 time units; it is a product
	// choice, so it lives in configuration rather than in code.
	MismatchDelay time.Duration

	// DefaultColumns is used when Start receives no column preference.
	DefaultColumns int

	Layout layout.Config

	// Now is the time source for the clock. Nil means time.Now.
	Now func() time.Time

	// Seed feeds the deck shuffle. Zero means time-based.
	Seed int64
}

// DefaultConfig returns engine tunables matching the original product.
func DefaultConfig() Config {
	return Config{
		MismatchDelay:  5 * time.Second,
		DefaultColumns: 4,
		Layout:         layout.DefaultConfig(),
	}
}

// Session is one complete play-through from deck creation to all pairs
// matched. Exactly one is live per game screen; Start replaces the previous
// incarnation and invalidates its outstanding timers.
type Session struct {
	cfg Config
	rng *rand.Rand

	tiles    []deck.Tile
	plain    []string // terminal-friendly payload text, parallel to tiles
	rendered []string // presentation-safe HTML, parallel to tiles

	revealed []int // ids of tiles revealed in the current attempt, at most 2
	attempts int
	matched  int // matched pair count

	pendingMismatch bool
	timerGen        uint64

	columns      int
	availW       float64
	availH       float64
	spec         layout.Spec
	clock        *Clock
	started      bool
	totalPairs   int
	collectionID string
}

// New creates an engine with no deck. Selections are rejected until Start
// succeeds.
func New(cfg Config) *Session {
	if cfg.MismatchDelay <= 0 {
		cfg.MismatchDelay = DefaultConfig().MismatchDelay
	}
	if cfg.DefaultColumns <= 0 {
		cfg.DefaultColumns = DefaultConfig().DefaultColumns
	}
	if cfg.Layout == (layout.Config{}) {
		cfg.Layout = layout.DefaultConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// MismatchDelay exposes the configured cooldown so the platform can schedule
// the hide timer.
func (s *Session) MismatchDelay() time.Duration {
	return s.cfg.MismatchDelay
}

// Start builds a fresh deck and replaces any previous session state.
// On error (too few pairs) no partial state is created and the previous
// deck, if any, stays live. requestedColumns <= 0 falls back to the
// configured default.
func (s *Session) Start(collectionID string, pairs []content.Pair, requestedPairs, requestedColumns int) error {
	tiles, err := deck.Build(s.rng, pairs, requestedPairs)
	if err != nil {
		return err
	}

	// Invalidate timers scheduled against the previous incarnation.
	s.timerGen++
	s.pendingMismatch = false

	s.tiles = tiles
	s.plain = make([]string, len(tiles))
	s.rendered = make([]string, len(tiles))
	for i, t := range tiles {
		s.plain[i] = content.PlainText(t.Payload)
		s.rendered[i] = content.RenderHTML(t.Payload)
	}

	s.revealed = s.revealed[:0]
	s.attempts = 0
	s.matched = 0
	s.totalPairs = len(tiles) / 2
	s.collectionID = collectionID

	s.columns = requestedColumns
	if s.columns <= 0 {
		s.columns = s.cfg.DefaultColumns
	}

	s.clock = NewClock(s.cfg.Now)
	s.started = true
	s.recomputeLayout()
	return nil
}

// Select processes a tile selection event. When the selection completes a
// mismatched pair it returns schedule=true together with the generation
// token to pass back via ResolveMismatch once the cooldown elapses.
//
// Invalid selections are silently ignored: unknown ids, already matched
// tiles, repeat selection of an already revealed tile, selections before a
// deck exists, and selections after completion.
func (s *Session) Select(tileID int) (gen uint64, schedule bool) {
	if !s.started || s.AllMatched() {
		return 0, false
	}

	t := s.tileByID(tileID)
	if t == nil || t.State == deck.Matched {
		return 0, false
	}

	// A pending mismatch is resolved eagerly so a fast player can interrupt
	// the cooldown instead of waiting it out.
	if s.pendingMismatch {
		s.hidePending()
	}

	if t.State == deck.Visible {
		// Same tile twice in a row is not a second reveal.
		return 0, false
	}

	t.State = deck.Visible
	s.revealed = append(s.revealed, t.ID)
	s.clock.Start()

	if len(s.revealed) < 2 {
		return 0, false
	}

	// Second reveal: this completes one pair-comparison.
	s.attempts++

	first := s.tileByID(s.revealed[0])
	second := s.tileByID(s.revealed[1])
	if first.PairKey == second.PairKey {
		first.State = deck.Matched
		second.State = deck.Matched
		s.matched++
		s.revealed = s.revealed[:0]
		if s.AllMatched() {
			s.clock.Stop()
		}
		return 0, false
	}

	s.pendingMismatch = true
	s.timerGen++
	return s.timerGen, true
}

// ResolveMismatch hides the pending mismatched pair. gen must be the token
// returned by the Select call that scheduled the timer; stale tokens from
// superseded timers or replaced sessions are ignored.
func (s *Session) ResolveMismatch(gen uint64) {
	if !s.pendingMismatch || gen != s.timerGen {
		return
	}
	s.hidePending()
}

// hidePending flips any still-visible revealed tiles back to Hidden, clears
// the pending selection state, and supersedes the outstanding timer.
func (s *Session) hidePending() {
	for _, id := range s.revealed {
		if t := s.tileByID(id); t != nil && t.State == deck.Visible {
			t.State = deck.Hidden
		}
	}
	s.revealed = s.revealed[:0]
	s.pendingMismatch = false
	s.timerGen++
}

// Resize records the available viewport and recomputes the board geometry.
// Reveal state changes never trigger recomputation; only this, Start, and
// SetColumns do.
func (s *Session) Resize(width, height float64) {
	s.availW = width
	s.availH = height
	s.recomputeLayout()
}

// SetColumns changes the column count. Non-positive values are ignored.
func (s *Session) SetColumns(columns int) {
	if columns <= 0 {
		return
	}
	s.columns = columns
	s.recomputeLayout()
}

// Stop tears the session down: any outstanding mismatch timer becomes stale
// and the clock halts. Mandatory before discarding a session so a timer
// firing later cannot resurrect it.
func (s *Session) Stop() {
	s.timerGen++
	s.pendingMismatch = false
	if s.clock != nil {
		s.clock.Stop()
	}
}

// AllMatched reports whether every tile on the board is matched.
func (s *Session) AllMatched() bool {
	return s.started && len(s.tiles) > 0 && s.matched == s.totalPairs
}

// Started reports whether a deck has been built.
func (s *Session) Started() bool {
	return s.started
}

// CollectionID returns the collection the current deck was built from.
func (s *Session) CollectionID() string {
	return s.collectionID
}

func (s *Session) recomputeLayout() {
	s.spec = layout.Compute(s.cfg.Layout, len(s.tiles), s.columns, s.availW, s.availH)
}

func (s *Session) tileByID(id int) *deck.Tile {
	for i := range s.tiles {
		if s.tiles[i].ID == id {
			return &s.tiles[i]
		}
	}
	return nil
}
