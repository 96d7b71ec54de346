// Package client is the consumer-side counterpart of the query engine. It
// fetches listings over HTTP and can re-filter an already fetched set locally
// using the exact same predicate function the server uses, so the two code
// paths cannot drift apart.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
	"github.com/hoang-11jjk/RealEstatePro/internal/query"
)

// Client talks to the properties API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	seq        Sequencer
}

// New creates a Client for the given base URL (e.g. "http://localhost:4000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll retrieves the full listing set via the legacy bare-array shape
// (GET /properties with no parameters).
func (c *Client) FetchAll(ctx context.Context) ([]models.Property, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/properties", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching properties: %s", resp.Status)
	}

	var items []models.Property
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode property list: %w", err)
	}
	return items, nil
}

// Fetch retrieves one page of matching listings via the enveloped shape.
func (c *Client) Fetch(ctx context.Context, f query.Filter, pg query.Page) (query.Result, error) {
	params := url.Values{}
	if f.Keyword != "" {
		params.Set("q", f.Keyword)
	}
	if f.Location != "" {
		params.Set("location_like", f.Location)
	}
	if f.Type != "" {
		params.Set("type", string(f.Type))
	}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	if f.Visibility != "" {
		params.Set("visibility", string(f.Visibility))
	}
	if f.MinPrice != nil {
		params.Set("price_gte", strconv.FormatInt(*f.MinPrice, 10))
	}
	if f.MaxPrice != nil {
		params.Set("price_lte", strconv.FormatInt(*f.MaxPrice, 10))
	}
	if f.MinArea != nil {
		params.Set("area_gte", strconv.FormatFloat(*f.MinArea, 'f', -1, 64))
	}
	if f.MaxArea != nil {
		params.Set("area_lte", strconv.FormatFloat(*f.MaxArea, 'f', -1, 64))
	}
	pg = pg.Normalize()
	params.Set("_page", strconv.Itoa(pg.Page))
	params.Set("_limit", strconv.Itoa(pg.Limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/properties?"+params.Encode(), nil)
	if err != nil {
		return query.Result{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return query.Result{}, fmt.Errorf("failed to fetch properties: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return query.Result{}, fmt.Errorf("unexpected status fetching properties: %s", resp.Status)
	}

	var result query.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return query.Result{}, fmt.Errorf("failed to decode property page: %w", err)
	}
	return result, nil
}

// FetchLatest is Fetch with stale-response suppression: when filters change
// faster than responses arrive, only the newest request's response is
// reported as fresh. The second return value is false for a stale response
// the caller should discard.
func (c *Client) FetchLatest(ctx context.Context, f query.Filter, pg query.Page) (query.Result, bool, error) {
	seq := c.seq.Next()
	result, err := c.Fetch(ctx, f, pg)
	if err != nil {
		return query.Result{}, false, err
	}
	return result, c.seq.Accept(seq), nil
}

// FilterLocal applies the query engine's predicate to an already fetched
// listing set, for instant feedback without a round-trip.
func FilterLocal(items []models.Property, f query.Filter) []models.Property {
	return query.Apply(items, f)
}

// Sequencer orders fetches so out-of-order completions cannot overwrite
// newer results with older ones.
type Sequencer struct {
	mu     sync.Mutex
	issued uint64
}

// Next issues the next sequence number.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept reports whether a response with the given sequence number is still
// the latest one issued.
func (s *Sequencer) Accept(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.issued
}
