package session

import (
	"github.com/vkalinin/pairtiles/internal/content"
	"github.com/vkalinin/pairtiles/internal/deck"
	"github.com/vkalinin/pairtiles/internal/layout"
)

// View is the read-only snapshot handed to the presentation layer. Every
// mutating call on the session leaves it able to produce a consistent View;
// the presentation owns nothing and mutates nothing.
type View struct {
	Tiles        []TileView
	Attempts     int
	MatchedPairs int
	TotalPairs   int
	AllMatched   bool
	Elapsed      string
	Seconds      int
	Columns      int
	Layout       layout.Spec
}

// TileView is one tile as the presentation layer sees it. Payload content is
// pre-rendered: Text is the terminal-friendly form, HTML the escaped
// fragment a web presentation would embed.
type TileView struct {
	ID       int
	State    deck.TileState
	Kind     content.Kind
	Text     string
	ImageURL string
	Alt      string
	HTML     string
}

// View builds the current snapshot.
func (s *Session) View() View {
	v := View{
		Tiles:        make([]TileView, len(s.tiles)),
		Attempts:     s.attempts,
		MatchedPairs: s.matched,
		TotalPairs:   s.totalPairs,
		AllMatched:   s.AllMatched(),
		Columns:      s.columns,
		Layout:       s.spec,
	}

	if s.clock != nil {
		v.Elapsed = FormatElapsed(s.clock.Elapsed())
		v.Seconds = s.clock.Seconds()
	} else {
		v.Elapsed = FormatElapsed(0)
	}

	for i, t := range s.tiles {
		tv := TileView{
			ID:    t.ID,
			State: t.State,
			Kind:  t.Payload.Kind,
			Text:  s.plain[i],
			HTML:  s.rendered[i],
		}
		if t.Payload.Kind == content.KindImage {
			tv.ImageURL = t.Payload.URL
			tv.Alt = t.Payload.Alt()
		}
		v.Tiles[i] = tv
	}

	return v
}
