package breedapi

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

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
)

const (
	// DefaultBaseURL is the public dogapi.dog v2 breeds collection.
	DefaultBaseURL = "https://dogapi.dog/api/v2/breeds"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

var (
	// ErrNotFound is matched (via errors.Is) by an HTTPError carrying a 404.
	ErrNotFound = errors.New("breed api: not found")
	// ErrMalformedResponse means a 2xx body could not be decoded. Repeating
	// the request yields the same body, so it is not retried.
	ErrMalformedResponse = errors.New("breed api: malformed response")
)

// HTTPError represents a non-2xx response from the breed source.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("breed api: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("breed api: status=%d body=%s", e.StatusCode, e.Body)
}

// Is reports a 404 as ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Page is one page of raw records plus the source's total page count.
// Dropped counts records that were not JSON objects or carried an unusable id.
type Page struct {
	Number   int
	LastPage int
	Records  []breed.RawBreedRecord
	Dropped  int
}

type pageEnvelope struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		Pagination struct {
			Current int `json:"current"`
			Last    int `json:"last"`
		} `json:"pagination"`
	} `json:"meta"`
}

type recordEnvelope struct {
	Data *breed.RawBreedRecord `json:"data"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to a paginated breed source:
//
//	GET <base>?page[number]=N&page[size]=S -> {data:[...], meta:{pagination:{last:N}}}
//	GET <base>/<id>                        -> {data:{...}}, 404 when absent
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient validates the base URL and builds a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid breed api base url: %w", err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{http: hc, baseURL: strings.TrimRight(base, "/")}, nil
}

// FetchPage fetches one catalog page. A missing pagination block is read as a single page.
func (c *Client) FetchPage(ctx context.Context, number, size int) (*Page, error) {
	q := url.Values{}
	q.Set("page[number]", strconv.Itoa(number))
	q.Set("page[size]", strconv.Itoa(size))

	var env pageEnvelope
	if err := c.getJSON(ctx, c.baseURL+"?"+q.Encode(), &env); err != nil {
		return nil, err
	}

	last := env.Meta.Pagination.Last
	if last < 1 {
		last = 1
	}
	page := &Page{Number: number, LastPage: last, Records: make([]breed.RawBreedRecord, 0, len(env.Data))}
	for _, raw := range env.Data {
		var rec breed.RawBreedRecord
		if err := rec.UnmarshalJSON(raw); err != nil {
			page.Dropped++
			continue
		}
		page.Records = append(page.Records, rec)
	}
	return page, nil
}

// FetchBreed fetches one raw record by identifier.
func (c *Client) FetchBreed(ctx context.Context, id string) (breed.RawBreedRecord, error) {
	var env recordEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/"+url.PathEscape(id), &env); err != nil {
		return breed.RawBreedRecord{}, err
	}
	if env.Data == nil {
		return breed.RawBreedRecord{}, fmt.Errorf("%w: empty payload for %s", ErrNotFound, id)
	}
	return *env.Data, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("breed api: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("breed api: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("breed api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(raw))
		if len(body) > 512 {
			body = body[:512]
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
