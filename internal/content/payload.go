// Package content defines card payloads, matchable pairs, and the renderer
// that turns untrusted card text into a presentation-safe form.
package content

// Kind discriminates the payload variants.
type Kind int

const (
	KindImage Kind = iota
	KindText
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Payload is one card face: either a fetchable image reference or inline
// text. Exactly one variant is populated, selected by Kind. Payloads are
// immutable once built.
type Payload struct {
	Kind Kind

	// Image variant
	Filename string
	URL      string

	// Text variant
	Raw string
}

// ImagePayload builds an image card face.
func ImagePayload(filename, url string) Payload {
	return Payload{Kind: KindImage, Filename: filename, URL: url}
}

// TextPayload builds an inline-text card face.
func TextPayload(raw string) Payload {
	return Payload{Kind: KindText, Raw: raw}
}

// Alt returns the fallback text shown when an image cannot be displayed.
func (p Payload) Alt() string {
	return p.Filename
}

// Pair couples two payloads that match each other on the board.
// Key is the pair identity: two tiles match iff their keys are equal.
// It is derived from the source filename or a generated id, never from
// payload content, so two different text cards with identical bodies
// stay distinct pairs.
type Pair struct {
	Key string
	A   Payload
	B   Payload
}

// TwinPair builds a pair whose both faces show the same payload.
// This is the common case for image collections.
func TwinPair(key string, p Payload) Pair {
	return Pair{Key: key, A: p, B: p}
}
