package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/config"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
)

// BreedSource is the acquisition surface the breed use cases depend on.
// *breedapi.Acquirer implements it.
type BreedSource interface {
	FetchCatalog(ctx context.Context, pageSize int) (*breedapi.Catalog, error)
	Lookup(ctx context.Context, id string) (breed.Breed, error)
}

// CatalogDTO is the aggregated catalog plus its completeness report.
type CatalogDTO struct {
	Breeds       []breed.Breed `json:"breeds"`
	TotalPages   int           `json:"total_pages"`
	SkippedPages []int         `json:"skipped_pages"`
	// Complete is false when any page was skipped or the whole fetch failed.
	Complete bool `json:"complete"`
	// Degraded is true when the fetch failed and an empty list was substituted.
	Degraded bool `json:"degraded"`
}

// BreedService implements the breed catalog use cases.
type BreedService struct {
	source   BreedSource
	failMode config.FailMode
	logger   *zap.Logger
}

// NewBreedService creates a new BreedService. An empty fail mode means FailOpen.
func NewBreedService(source BreedSource, failMode config.FailMode, logger *zap.Logger) *BreedService {
	if failMode == "" {
		failMode = config.FailOpen
	}
	return &BreedService{source: source, failMode: failMode, logger: logger}
}

// ListBreeds returns the whole catalog. An empty catalog is a valid result.
// When the fetch fails outright, fail-open returns an empty degraded catalog
// and fail-closed returns the upstream error.
func (s *BreedService) ListBreeds(ctx context.Context, pageSize int) (*CatalogDTO, error) {
	catalog, err := s.source.FetchCatalog(ctx, pageSize)
	if err != nil {
		if s.failMode == config.FailClosed {
			s.logger.Error("breed catalog unavailable", zap.Error(err))
			return nil, err
		}
		s.logger.Error("breed catalog unavailable, serving empty list", zap.Error(err))
		return &CatalogDTO{
			Breeds:       []breed.Breed{},
			SkippedPages: []int{},
			Degraded:     true,
		}, nil
	}

	dto := &CatalogDTO{
		Breeds:       catalog.Breeds,
		TotalPages:   catalog.TotalPages,
		SkippedPages: catalog.SkippedPages,
		Complete:     catalog.Complete(),
	}
	if dto.Breeds == nil {
		dto.Breeds = []breed.Breed{}
	}
	if dto.SkippedPages == nil {
		dto.SkippedPages = []int{}
	}
	return dto, nil
}

// GetBreed looks up one breed by its source identifier.
func (s *BreedService) GetBreed(ctx context.Context, id string) (*breed.Breed, error) {
	b, err := s.source.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
