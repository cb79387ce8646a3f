package breedapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

const (
	DefaultPageSize  = 50
	DefaultPageDelay = 300 * time.Millisecond
)

// Options tune an Acquirer. Zero values fall back to the defaults; a nil
// Retry uses DefaultRetryPolicy, while a zero RetryPolicy disables retries.
type Options struct {
	Shape     breed.SourceShape
	PageSize  int
	PageDelay time.Duration
	Retry     *RetryPolicy
	// Sleeper is used for both the page delay and retry delays.
	Sleeper Sleeper
}

// Catalog is the aggregated result of a catalog fetch.
type Catalog struct {
	Breeds         []breed.Breed
	TotalPages     int
	SkippedPages   []int
	DroppedRecords int
}

// Complete reports whether every page contributed its records.
func (c *Catalog) Complete() bool { return len(c.SkippedPages) == 0 }

// Acquirer fetches and normalizes breed data from one source. It holds no
// per-call state and is safe for concurrent use; construct one per process
// for servers and one per session for interactive tools.
type Acquirer struct {
	client    *Client
	retrier   *Retrier
	shape     breed.SourceShape
	pageSize  int
	pageDelay time.Duration
	sleep     Sleeper
	logger    *zap.Logger
}

// NewAcquirer creates an Acquirer over client.
func NewAcquirer(client *Client, opts Options, logger *zap.Logger) *Acquirer {
	if !opts.Shape.IsValid() {
		opts.Shape = breed.ShapeNested
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageDelay < 0 {
		opts.PageDelay = 0
	}
	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = *opts.Retry
	}
	if opts.Sleeper == nil {
		opts.Sleeper = SleepContext
	}

	return &Acquirer{
		client:    client,
		retrier:   NewRetrier(retry, opts.Sleeper, logger),
		shape:     opts.Shape,
		pageSize:  opts.PageSize,
		pageDelay: opts.PageDelay,
		sleep:     opts.Sleeper,
		logger:    logger,
	}
}

// FetchCatalog retrieves every page and returns the normalized breeds in page
// order. Page 1 goes through the retry wrapper and its failure fails the
// whole call. Pages 2..N are fetched one at a time, each preceded by the page
// delay; a failed page is skipped and recorded in SkippedPages.
// pageSize <= 0 uses the configured size.
func (a *Acquirer) FetchCatalog(ctx context.Context, pageSize int) (*Catalog, error) {
	if pageSize <= 0 {
		pageSize = a.pageSize
	}

	var first *Page
	err := a.retrier.Do(ctx, "fetch catalog page 1", func(ctx context.Context) error {
		p, err := a.client.FetchPage(ctx, 1, pageSize)
		if err != nil {
			return err
		}
		first = p
		return nil
	})
	if err != nil {
		return nil, domain.NewUpstreamError("could not fetch breed catalog", err)
	}

	catalog := &Catalog{TotalPages: first.LastPage}
	a.collect(catalog, first)
	if first.LastPage == 1 {
		return catalog, nil
	}

	for page := 2; page <= first.LastPage; page++ {
		if err := a.sleep(ctx, a.pageDelay); err != nil {
			return nil, domain.NewUpstreamError("breed catalog fetch interrupted", err)
		}

		p, err := a.client.FetchPage(ctx, page, pageSize)
		if err != nil {
			a.logger.Warn("skipping breed catalog page",
				zap.Int("page", page),
				zap.Int("last_page", first.LastPage),
				zap.Error(err),
			)
			catalog.SkippedPages = append(catalog.SkippedPages, page)
			continue
		}
		a.collect(catalog, p)
	}

	a.logger.Info("breed catalog fetched",
		zap.Int("breeds", len(catalog.Breeds)),
		zap.Int("pages", catalog.TotalPages),
		zap.Ints("skipped_pages", catalog.SkippedPages),
		zap.Int("dropped_records", catalog.DroppedRecords),
	)
	return catalog, nil
}

func (a *Acquirer) collect(catalog *Catalog, p *Page) {
	if p.Dropped > 0 {
		a.logger.Warn("dropping undecodable breed records",
			zap.Int("page", p.Number),
			zap.Int("dropped", p.Dropped),
		)
		catalog.DroppedRecords += p.Dropped
	}
	catalog.Breeds = append(catalog.Breeds, breed.NormalizeAll(a.shape, p.Records)...)
}

// Lookup fetches and normalizes a single breed. An empty id is rejected
// without a network call; a 404 from the source is a not-found error; any
// other failure that survives the retry budget is an upstream error.
func (a *Acquirer) Lookup(ctx context.Context, id string) (breed.Breed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return breed.Breed{}, domain.NewValidationError("missing breed ID")
	}

	var raw breed.RawBreedRecord
	err := a.retrier.Do(ctx, "fetch breed "+id, func(ctx context.Context) error {
		r, err := a.client.FetchBreed(ctx, id)
		if err != nil {
			return err
		}
		raw = r
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		return breed.Breed{}, domain.NewNotFoundError("Breed", id)
	default:
		return breed.Breed{}, domain.NewUpstreamError("could not fetch breed", fmt.Errorf("lookup %s: %w", id, err))
	}

	return breed.Normalize(a.shape, raw), nil
}
