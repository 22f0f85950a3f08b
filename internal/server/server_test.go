package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vkalinin/pairtiles/internal/provider"
)

// newTestRoot builds a collections directory with one image collection, one
// text collection, one manifest collection, and one empty directory.
func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	pets := filepath.Join(root, "pets")
	mustMkdir(t, pets)
	mustWrite(t, filepath.Join(pets, "cat.png"), "png-bytes")
	mustWrite(t, filepath.Join(pets, "dog.jpg"), "jpg-bytes")
	mustWrite(t, filepath.Join(pets, "notes.txt"), "not an asset")
	mustWrite(t, filepath.Join(pets, "description.json"),
		`{"title":"Pets","description":"Furry friends","icon":"dog.jpg","source":"home"}`)

	notes := filepath.Join(root, "night_sky")
	mustMkdir(t, filepath.Join(notes, "cards"))
	mustWrite(t, filepath.Join(notes, "cards", "mars.md"), "**Mars** is red\n")
	mustWrite(t, filepath.Join(notes, "cards", "venus.md"), "Venus is bright\n")
	mustWrite(t, filepath.Join(notes, "description.md"), "Cards about the night sky.\n")

	quiz := filepath.Join(root, "quiz")
	mustMkdir(t, quiz)
	mustWrite(t, filepath.Join(quiz, "eiffel.png"), "png-bytes")
	mustWrite(t, filepath.Join(quiz, "pairs.yaml"),
		"pairs:\n"+
			"  - key: capital-france\n"+
			"    a: {text: France}\n"+
			"    b: {text: '**Paris**'}\n"+
			"  - a: {image: eiffel.png}\n"+
			"    b: {text: Eiffel Tower}\n")

	mustMkdir(t, filepath.Join(root, "empty"))

	return root
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(NewCatalog(newTestRoot(t)), log.New(os.Stderr))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	if status := getJSON(t, ts.URL+"/health", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestListCollections(t *testing.T) {
	ts := newTestServer(t)

	var collections []provider.CollectionSummary
	if status := getJSON(t, ts.URL+"/collections", &collections); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	// The empty directory is skipped; the rest are sorted by id.
	if len(collections) != 3 {
		t.Fatalf("got %d collections, want 3: %+v", len(collections), collections)
	}

	byID := make(map[string]provider.CollectionSummary)
	for _, c := range collections {
		byID[c.ID] = c
	}

	pets := byID["pets"]
	if pets.Title != "Pets" || pets.Description != "Furry friends" || pets.Source != "home" {
		t.Errorf("pets summary = %+v", pets)
	}
	if pets.PairCount != 2 {
		t.Errorf("pets PairCount = %d, want 2", pets.PairCount)
	}
	if pets.IconURL != "/collections/pets/assets/dog.jpg" {
		t.Errorf("pets IconURL = %q", pets.IconURL)
	}

	sky := byID["night_sky"]
	if sky.Title != "Night Sky" {
		t.Errorf("derived title = %q, want Night Sky", sky.Title)
	}
	if sky.Description != "Cards about the night sky." {
		t.Errorf("markdown description = %q", sky.Description)
	}
}

func TestListPairsImageCollection(t *testing.T) {
	ts := newTestServer(t)

	var records []provider.PairRecord
	if status := getJSON(t, ts.URL+"/collections/pets/pairs", &records); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(records) != 2 {
		t.Fatalf("got %d pairs, want 2", len(records))
	}

	first := records[0]
	if first.Key != "cat.png" {
		t.Errorf("Key = %q, want cat.png", first.Key)
	}
	if first.A.Kind != "image" || first.A.URL != "/collections/pets/assets/cat.png" {
		t.Errorf("payload = %+v", first.A)
	}
	if first.A != first.B {
		t.Errorf("image pair faces differ: %+v / %+v", first.A, first.B)
	}
}

func TestListPairsTextCollection(t *testing.T) {
	ts := newTestServer(t)

	var records []provider.PairRecord
	if status := getJSON(t, ts.URL+"/collections/night_sky/pairs", &records); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(records) != 2 {
		t.Fatalf("got %d pairs, want 2", len(records))
	}

	mars := records[0]
	if mars.Key != "mars.md" || mars.A.Kind != "text" {
		t.Errorf("pair = %+v", mars)
	}
	if mars.A.Text != "**Mars** is red" {
		t.Errorf("Text = %q", mars.A.Text)
	}
	if mars.A.HTML != "<strong>Mars</strong> is red" {
		t.Errorf("HTML = %q", mars.A.HTML)
	}
}

func TestListPairsManifestCollection(t *testing.T) {
	ts := newTestServer(t)

	var records []provider.PairRecord
	if status := getJSON(t, ts.URL+"/collections/quiz/pairs", &records); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(records) != 2 {
		t.Fatalf("got %d pairs, want 2", len(records))
	}

	capital := records[0]
	if capital.Key != "capital-france" {
		t.Errorf("Key = %q", capital.Key)
	}
	if capital.A.Text != "France" || capital.B.HTML != "<strong>Paris</strong>" {
		t.Errorf("sides = %+v / %+v", capital.A, capital.B)
	}

	tower := records[1]
	if tower.Key != "eiffel.png" {
		t.Errorf("defaulted Key = %q, want eiffel.png", tower.Key)
	}
	if tower.A.Kind != "image" || tower.B.Kind != "text" {
		t.Errorf("mixed pair kinds = %q / %q", tower.A.Kind, tower.B.Kind)
	}
}

func TestGetAsset(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/collections/pets/assets/cat.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}

func TestNotFoundResponses(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown collection", path: "/collections/nope/pairs"},
		{name: "empty collection", path: "/collections/empty/pairs"},
		{name: "unknown asset", path: "/collections/pets/assets/missing.png"},
		{name: "non-image asset", path: "/collections/pets/assets/notes.txt"},
		{name: "unknown route", path: "/bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := getJSON(t, ts.URL+tt.path, nil); status != http.StatusNotFound {
				t.Errorf("GET %s status = %d, want 404", tt.path, status)
			}
		})
	}
}

func TestAssetTraversalRejected(t *testing.T) {
	catalog := NewCatalog(newTestRoot(t))

	for _, name := range []string{"../secret.png", "..", "a/b.png", "a\\b.png"} {
		if _, err := catalog.AssetPath("pets", name); err == nil {
			t.Errorf("AssetPath accepted %q", name)
		}
		if _, err := catalog.Get(name); err == nil {
			t.Errorf("Get accepted %q", name)
		}
	}
}
