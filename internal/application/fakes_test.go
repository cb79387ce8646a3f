package application

import (
	"context"
	"errors"
	"sync"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/kafka"
)

type fakeBreedSource struct {
	mu         sync.Mutex
	catalog    *breedapi.Catalog
	catalogErr error
	breeds     map[string]breed.Breed
	lookups    []string
	pageSizes  []int
}

func (f *fakeBreedSource) FetchCatalog(ctx context.Context, pageSize int) (*breedapi.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageSizes = append(f.pageSizes, pageSize)
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalog, nil
}

func (f *fakeBreedSource) Lookup(ctx context.Context, id string) (breed.Breed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	b, ok := f.breeds[id]
	if !ok {
		return breed.Breed{}, domain.NewNotFoundError("Breed", id)
	}
	return b, nil
}

type publishedEvent struct {
	topic string
	key   string
	event kafka.CloudEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.event.Type
	}
	return out
}

type fakeSearcher struct {
	result    *imagesearch.Result
	err       error
	gotBreed  string
	gotPage   int
	callCount int
}

func (s *fakeSearcher) Search(ctx context.Context, breedName string, page int) (*imagesearch.Result, error) {
	s.callCount++
	s.gotBreed = breedName
	s.gotPage = page
	return s.result, s.err
}

var errBoom = errors.New("boom")
