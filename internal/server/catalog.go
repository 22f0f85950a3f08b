// Package server implements the content-provider HTTP service: it
// enumerates card collections on disk and serves their pair definitions
// and image assets. The game consumes it through the provider package; the
// service itself holds no game state.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vkalinin/pairtiles/internal/content"
)

// ErrNoCollection is returned for unknown or empty collection ids.
var ErrNoCollection = errors.New("server: collection not found")

// imageExtensions are the asset types a collection may contain.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".gif":  true,
	".webp": true,
}

// textExtensions are the card files under a collection's cards directory.
var textExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// Catalog reads collections from a root directory. Each collection is a
// subdirectory holding image assets, optional text cards under cards/, an
// optional pairs.yaml manifest, and optional description.json or
// description.md metadata.
type Catalog struct {
	root string
}

// NewCatalog creates a catalog over the given root directory.
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root}
}

// Collection is one fully resolved collection.
type Collection struct {
	ID          string
	Title       string
	Description string
	Icon        string // asset filename, may be empty
	Source      string
	Pairs       []content.Pair
}

// List returns every non-empty collection, sorted by id.
func (c *Catalog) List() ([]Collection, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("server: reading collections root %s: %w", c.root, err)
	}

	var collections []Collection
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		col, err := c.load(entry.Name())
		if err != nil {
			if errors.Is(err, ErrNoCollection) {
				// Nothing playable inside; skip rather than fail the listing.
				continue
			}
			return nil, err
		}
		collections = append(collections, col)
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].ID < collections[j].ID
	})
	return collections, nil
}

// Get returns one collection by id.
func (c *Catalog) Get(id string) (Collection, error) {
	if !safeName(id) {
		return Collection{}, fmt.Errorf("%w: %q", ErrNoCollection, id)
	}
	return c.load(id)
}

// AssetPath resolves an asset filename inside a collection to a filesystem
// path, rejecting traversal attempts and non-image files.
func (c *Catalog) AssetPath(collectionID, filename string) (string, error) {
	if !safeName(collectionID) || !safeName(filename) {
		return "", fmt.Errorf("%w: asset %q", ErrNoCollection, filename)
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return "", fmt.Errorf("%w: asset %q", ErrNoCollection, filename)
	}

	path := filepath.Join(c.root, collectionID, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: asset %q", ErrNoCollection, filename)
	}
	return path, nil
}

func (c *Catalog) load(id string) (Collection, error) {
	dir := filepath.Join(c.root, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Collection{}, fmt.Errorf("%w: %q", ErrNoCollection, id)
	}

	meta := readMetadata(dir, id)

	pairs, images, err := collectPairs(dir, id)
	if err != nil {
		return Collection{}, err
	}
	if len(pairs) == 0 {
		return Collection{}, fmt.Errorf("%w: %q has no playable content", ErrNoCollection, id)
	}

	icon := meta.Icon
	if icon != "" && !imageExtensions[strings.ToLower(filepath.Ext(icon))] {
		icon = ""
	}
	if icon == "" && len(images) > 0 {
		icon = images[0]
	}

	return Collection{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Icon:        icon,
		Source:      meta.Source,
		Pairs:       pairs,
	}, nil
}

// manifest is the pairs.yaml document. When present it fully defines the
// collection's pairs; otherwise pairs are derived from the assets on disk.
type manifest struct {
	Pairs []manifestPair `yaml:"pairs"`
}

type manifestPair struct {
	Key string       `yaml:"key"`
	A   manifestSide `yaml:"a"`
	B   manifestSide `yaml:"b"`
}

type manifestSide struct {
	Image string `yaml:"image"`
	Text  string `yaml:"text"`
}

// collectPairs builds the pair list for a collection directory. It returns
// the pairs plus the sorted image asset names (for icon selection).
func collectPairs(dir, id string) ([]content.Pair, []string, error) {
	images, texts, err := scanAssets(dir)
	if err != nil {
		return nil, nil, err
	}

	manifestPath := filepath.Join(dir, "pairs.yaml")
	if data, err := os.ReadFile(manifestPath); err == nil {
		pairs, err := manifestPairs(data, id)
		if err != nil {
			return nil, nil, err
		}
		return pairs, images, nil
	}

	// No manifest: every image pairs with itself, as does every text card.
	var pairs []content.Pair
	for _, name := range images {
		pairs = append(pairs, content.TwinPair(name, content.ImagePayload(name, assetURL(id, name))))
	}
	for _, name := range texts {
		body, err := os.ReadFile(filepath.Join(dir, "cards", name))
		if err != nil {
			return nil, nil, fmt.Errorf("server: reading card %s: %w", name, err)
		}
		pairs = append(pairs, content.TwinPair(name, content.TextPayload(strings.TrimSpace(string(body)))))
	}
	return pairs, images, nil
}

// manifestPairs parses a pairs.yaml document into engine pairs.
func manifestPairs(data []byte, id string) ([]content.Pair, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("server: parsing pairs.yaml in %s: %w", id, err)
	}

	pairs := make([]content.Pair, 0, len(m.Pairs))
	for i, mp := range m.Pairs {
		key := mp.Key
		if key == "" {
			// Fall back to the first image filename, then a positional id.
			switch {
			case mp.A.Image != "":
				key = mp.A.Image
			case mp.B.Image != "":
				key = mp.B.Image
			default:
				key = fmt.Sprintf("pair-%d", i)
			}
		}
		pairs = append(pairs, content.Pair{
			Key: key,
			A:   sidePayload(mp.A, id),
			B:   sidePayload(mp.B, id),
		})
	}
	return pairs, nil
}

func sidePayload(side manifestSide, id string) content.Payload {
	if side.Image != "" {
		return content.ImagePayload(side.Image, assetURL(id, side.Image))
	}
	return content.TextPayload(side.Text)
}

// scanAssets returns the sorted image filenames in dir and the sorted text
// card filenames under dir/cards.
func scanAssets(dir string) (images, texts []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("server: reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, entry.Name())
		}
	}

	if cardEntries, err := os.ReadDir(filepath.Join(dir, "cards")); err == nil {
		for _, entry := range cardEntries {
			if entry.IsDir() {
				continue
			}
			if textExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				texts = append(texts, entry.Name())
			}
		}
	}

	sort.Strings(images)
	sort.Strings(texts)
	return images, texts, nil
}

// metadata mirrors description.json.
type metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Source      string `json:"source"`
}

// readMetadata loads description.json or description.md, falling back to a
// title derived from the directory name.
func readMetadata(dir, id string) metadata {
	meta := metadata{Title: defaultTitle(id)}

	if data, err := os.ReadFile(filepath.Join(dir, "description.json")); err == nil {
		var parsed metadata
		if err := json.Unmarshal(data, &parsed); err == nil {
			if parsed.Title != "" {
				meta.Title = parsed.Title
			}
			meta.Description = parsed.Description
			meta.Icon = parsed.Icon
			meta.Source = parsed.Source
		}
		return meta
	}

	if data, err := os.ReadFile(filepath.Join(dir, "description.md")); err == nil {
		meta.Description = strings.TrimSpace(string(data))
	}
	return meta
}

// defaultTitle turns a directory name like "night_sky" into "Night Sky".
func defaultTitle(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// assetURL builds the server-relative URL for a collection asset.
func assetURL(collectionID, filename string) string {
	return "/collections/" + collectionID + "/assets/" + filename
}

// safeName rejects path components that could escape the collections root.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}
