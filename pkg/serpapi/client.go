// Package serpapi is a thin client for the SerpAPI Google Maps engine.
package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://serpapi.com"

// Client performs SerpAPI local search operations.
type Client interface {
	// Search returns one page of local results for the query, starting at
	// the given result offset. An empty slice signals exhaustion.
	Search(ctx context.Context, query string, start int) ([]Listing, error)
}

// Listing is one raw business result from the maps engine.
type Listing struct {
	Title             string   `json:"title"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	Rating            *float64 `json:"rating"`
	Reviews           int      `json:"reviews"`
	Website           string   `json:"website"`
	Links             Links    `json:"links"`
	Link              string   `json:"link"`
	PermanentlyClosed bool     `json:"permanently_closed"`
	Status            string   `json:"status"`
}

// Links holds secondary URLs attached to a listing.
type Links struct {
	Website string `json:"website"`
}

type searchResponse struct {
	LocalResults []Listing `json:"local_results"`
	Error        string    `json:"error"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey   string
	location string
	baseURL  string
	http     *http.Client
}

// NewClient creates a SerpAPI client anchored at the given location,
// e.g. "@12.9716,77.5946,14z".
func NewClient(apiKey, location string, opts ...Option) Client {
	c := &httpClient{
		apiKey:   apiKey,
		location: location,
		baseURL:  defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, start int) ([]Listing, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", query)
	params.Set("ll", c.location)
	params.Set("type", "search")
	params.Set("start", strconv.Itoa(start))
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("serpapi: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}

	// SerpAPI reports some failures with status 200 and an error field.
	if result.Error != "" {
		return nil, eris.Errorf("serpapi: %s", result.Error)
	}

	return result.LocalResults, nil
}
