package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	resultsPerPage  = 10
)

var (
	// ErrNotConfigured means the API key or search engine id is missing.
	ErrNotConfigured = errors.New("image search configuration missing")
	// ErrInvalidResponse means the upstream answered 2xx with an undecodable body.
	ErrInvalidResponse = errors.New("invalid response from image search api")
)

// StatusError carries a non-2xx upstream status and its error message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image search api: status=%d message=%s", e.StatusCode, e.Message)
}

// Item is one image hit.
type Item struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

// Result is the proxied search response.
type Result struct {
	Items []Item `json:"items"`
}

// Config configures a Client.
type Config struct {
	APIKey         string
	SearchEngineID string
	Endpoint       string
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// Client is a stateless proxy to the Google Custom Search JSON API.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	engineID string
}

// NewClient builds a Client. Missing credentials are reported per call, not here,
// so the service can start without image search.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		http:     hc,
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		engineID: strings.TrimSpace(cfg.SearchEngineID),
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.engineID != ""
}

// Search returns image results for a breed name. page is 1-based; values < 1 mean 1.
func (c *Client) Search(ctx context.Context, breedName string, page int) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", breedName+" dog")
	q.Set("searchType", "image")
	q.Set("num", strconv.Itoa(resultsPerPage))
	q.Set("safe", "active")
	q.Set("start", strconv.Itoa((page-1)*resultsPerPage+1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("image search: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("image search: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw)}
	}

	// items is omitted when the query has no hits, including pages past the end.
	var body struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if body.Items == nil {
		body.Items = []Item{}
	}
	return &Result{Items: body.Items}, nil
}

func upstreamMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return "failed to fetch images"
}
