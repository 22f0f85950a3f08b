// Package provider fetches collection and card-pair metadata for the game.
// The game engine treats it as a black-box data source; the reference
// implementation talks to the pairtiles content server over HTTP.
package provider

import (
	"context"
	"errors"

	"github.com/vkalinin/pairtiles/internal/content"
)

// ErrUnavailable wraps transport-level failures. The presentation layer
// surfaces these with a retry affordance and creates no partial session
// state.
var ErrUnavailable = errors.New("provider: unavailable")

// ErrNotFound is returned for unknown collection ids.
var ErrNotFound = errors.New("provider: collection not found")

// CollectionSummary is the high-level metadata for one card collection.
type CollectionSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
	PairCount   int    `json:"pair_count"`
	Source      string `json:"source,omitempty"`
}

// PayloadRecord is the wire form of one card face.
type PayloadRecord struct {
	Kind     string `json:"kind"` // "image" or "text"
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"` // pre-rendered safe fragment
}

// PairRecord is the wire form of one matchable pair.
type PairRecord struct {
	Key string        `json:"key"`
	A   PayloadRecord `json:"a"`
	B   PayloadRecord `json:"b"`
}

// Provider enumerates collections and their pairs.
type Provider interface {
	Collections(ctx context.Context) ([]CollectionSummary, error)
	Pairs(ctx context.Context, collectionID string) ([]content.Pair, error)
}

// ToPayload converts a wire payload into the engine's form.
func (r PayloadRecord) ToPayload() content.Payload {
	if r.Kind == "image" {
		return content.ImagePayload(r.Filename, r.URL)
	}
	return content.TextPayload(r.Text)
}

// ToPair converts a wire pair into the engine's form.
func (r PairRecord) ToPair() content.Pair {
	return content.Pair{Key: r.Key, A: r.A.ToPayload(), B: r.B.ToPayload()}
}

// FromPayload converts an engine payload into its wire form, including the
// pre-rendered safe HTML fragment.
func FromPayload(p content.Payload) PayloadRecord {
	rec := PayloadRecord{Kind: p.Kind.String(), HTML: content.RenderHTML(p)}
	if p.Kind == content.KindImage {
		rec.Filename = p.Filename
		rec.URL = p.URL
	} else {
		rec.Text = p.Raw
	}
	return rec
}

// FromPair converts an engine pair into its wire form.
func FromPair(p content.Pair) PairRecord {
	return PairRecord{Key: p.Key, A: FromPayload(p.A), B: FromPayload(p.B)}
}
