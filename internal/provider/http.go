package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vkalinin/pairtiles/internal/content"
)

// HTTPProvider talks to the pairtiles content server JSON API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates a provider against the given base URL.
func NewHTTP(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Collections fetches the collection list.
func (p *HTTPProvider) Collections(ctx context.Context) ([]CollectionSummary, error) {
	var summaries []CollectionSummary
	if err := p.getJSON(ctx, "/collections", &summaries); err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].IconURL = p.absolute(summaries[i].IconURL)
	}
	return summaries, nil
}

// Pairs fetches the card pairs of one collection.
func (p *HTTPProvider) Pairs(ctx context.Context, collectionID string) ([]content.Pair, error) {
	path := "/collections/" + url.PathEscape(collectionID) + "/pairs"
	var records []PairRecord
	if err := p.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}

	pairs := make([]content.Pair, len(records))
	for i, rec := range records {
		// Asset URLs come back server-relative; resolve them against the base.
		rec.A.URL = p.absolute(rec.A.URL)
		rec.B.URL = p.absolute(rec.B.URL)
		pairs[i] = rec.ToPair()
	}
	return pairs, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: GET %s returned %s", ErrUnavailable, path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// absolute resolves a server-relative URL against the provider base.
// Absolute URLs and empty strings pass through unchanged.
func (p *HTTPProvider) absolute(u string) string {
	if u == "" || strings.Contains(u, "://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return p.baseURL + u
}
