package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vkalinin/pairtiles/internal/content"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/collections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"pets","title":"Pets","icon_url":"/collections/pets/assets/cat.png","pair_count":3}
		]`))
	})
	mux.HandleFunc("/collections/pets/pairs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"key":"cat.png","a":{"kind":"image","filename":"cat.png","url":"/collections/pets/assets/cat.png"},
			              "b":{"kind":"image","filename":"cat.png","url":"/collections/pets/assets/cat.png"}},
			{"key":"note","a":{"kind":"text","text":"a **note**"},"b":{"kind":"text","text":"a **note**"}}
		]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProviderCollections(t *testing.T) {
	srv := newTestServer(t)
	p := NewHTTP(srv.URL, 5*time.Second)

	collections, err := p.Collections(context.Background())
	if err != nil {
		t.Fatalf("Collections() failed: %v", err)
	}
	if len(collections) != 1 {
		t.Fatalf("got %d collections, want 1", len(collections))
	}
	c := collections[0]
	if c.ID != "pets" || c.PairCount != 3 {
		t.Errorf("unexpected summary: %+v", c)
	}
	if c.IconURL != srv.URL+"/collections/pets/assets/cat.png" {
		t.Errorf("IconURL = %q, want absolute", c.IconURL)
	}
}

func TestHTTPProviderPairs(t *testing.T) {
	srv := newTestServer(t)
	p := NewHTTP(srv.URL, 5*time.Second)

	pairs, err := p.Pairs(context.Background(), "pets")
	if err != nil {
		t.Fatalf("Pairs() failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}

	img := pairs[0]
	if img.A.Kind != content.KindImage {
		t.Errorf("first pair kind = %v, want image", img.A.Kind)
	}
	if img.A.URL != srv.URL+"/collections/pets/assets/cat.png" {
		t.Errorf("image URL = %q, want absolute", img.A.URL)
	}

	txt := pairs[1]
	if txt.A.Kind != content.KindText || txt.A.Raw != "a **note**" {
		t.Errorf("text pair payload = %+v", txt.A)
	}
}

func TestHTTPProviderNotFound(t *testing.T) {
	srv := newTestServer(t)
	p := NewHTTP(srv.URL, 5*time.Second)

	_, err := p.Pairs(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestHTTPProviderUnavailable(t *testing.T) {
	// Point at a closed server.
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	p := NewHTTP(url, time.Second)
	if _, err := p.Collections(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestPairRecordRoundTrip(t *testing.T) {
	pair := content.Pair{
		Key: "k",
		A:   content.ImagePayload("a.png", "/x/a.png"),
		B:   content.TextPayload("**b**"),
	}

	rec := FromPair(pair)
	if rec.A.Kind != "image" || rec.B.Kind != "text" {
		t.Fatalf("unexpected kinds: %+v", rec)
	}
	if rec.B.HTML != "<strong>b</strong>" {
		t.Errorf("pre-rendered HTML = %q", rec.B.HTML)
	}

	back := rec.ToPair()
	if back.Key != pair.Key || back.A != pair.A || back.B != pair.B {
		t.Errorf("round-trip mismatch: %+v != %+v", back, pair)
	}
}
