package breedapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
)

const breedsPath = "/api/v2/breeds"

// fakeSource is an in-process stand-in for the dogapi.dog v2 breeds API.
type fakeSource struct {
	mu sync.Mutex

	pages     [][]map[string]any
	failPages map[int]int // page -> remaining failures (-1: always)
	breeds    map[string]map[string]any
	failIDs   map[string]int

	pageRequests   []int
	pageSizes      []string
	lookupRequests []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		failPages: map[int]int{},
		breeds:    map[string]map[string]any{},
		failIDs:   map[string]int{},
	}
}

func (f *fakeSource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == breedsPath {
		page, _ := strconv.Atoi(r.URL.Query().Get("page[number]"))
		f.pageRequests = append(f.pageRequests, page)
		f.pageSizes = append(f.pageSizes, r.URL.Query().Get("page[size]"))
		if consumeFailure(f.failPages, page) {
			http.Error(w, `{"errors":[{"title":"boom"}]}`, http.StatusInternalServerError)
			return
		}
		if page < 1 || page > len(f.pages) {
			writeJSON(w, map[string]any{"data": []any{}, "meta": map[string]any{"pagination": map[string]any{"last": len(f.pages)}}})
			return
		}
		writeJSON(w, map[string]any{
			"data": f.pages[page-1],
			"meta": map[string]any{"pagination": map[string]any{"current": page, "last": len(f.pages)}},
		})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, breedsPath+"/")
	f.lookupRequests = append(f.lookupRequests, id)
	if consumeFailure(f.failIDs, id) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
		return
	}
	rec, ok := f.breeds[id]
	if !ok {
		http.Error(w, `{"errors":[{"status":"404"}]}`, http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"data": rec})
}

// consumeFailure reports whether the request for key should fail, spending
// one scheduled failure. A negative count fails forever.
func consumeFailure[K comparable](m map[K]int, key K) bool {
	n := m[key]
	if n == 0 {
		return false
	}
	if n > 0 {
		m[key] = n - 1
	}
	return true
}

func (f *fakeSource) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pageRequests...)
}

func (f *fakeSource) requestedSizes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pageSizes...)
}

func (f *fakeSource) requestedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookupRequests...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// nestedRecord builds a dogapi.dog style record.
func nestedRecord(id, name string) map[string]any {
	return map[string]any{
		"id":   id,
		"type": "breed",
		"attributes": map[string]any{
			"name":        name,
			"description": name + " description",
			"life":        map[string]any{"min": 10, "max": 13},
		},
	}
}

// makePages builds n pages of size records each with ids "p<page>-<i>".
func makePages(n, size int) [][]map[string]any {
	pages := make([][]map[string]any, n)
	for p := range pages {
		for i := 0; i < size; i++ {
			id := fmt.Sprintf("p%d-%d", p+1, i)
			pages[p] = append(pages[p], nestedRecord(id, "Breed "+id))
		}
	}
	return pages
}

// recordingSleeper returns immediately and records each requested delay.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *recordingSleeper) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

type harness struct {
	source   *fakeSource
	server   *httptest.Server
	sleeper  *recordingSleeper
	acquirer *Acquirer
}

func newHarness(t *testing.T, shape breed.SourceShape) *harness {
	t.Helper()
	src := newFakeSource()
	srv := httptest.NewServer(src)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{BaseURL: srv.URL + breedsPath, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	sleeper := &recordingSleeper{}
	acq := NewAcquirer(client, Options{
		Shape:     shape,
		PageSize:  2,
		PageDelay: 300 * time.Millisecond,
		Retry:     &RetryPolicy{MaxRetries: 3, Delay: time.Second},
		Sleeper:   sleeper.Sleep,
	}, zap.NewNop())

	return &harness{source: src, server: srv, sleeper: sleeper, acquirer: acq}
}
