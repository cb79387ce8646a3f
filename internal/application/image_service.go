package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// ImageSearcher finds images for a breed. *imagesearch.Client implements it.
type ImageSearcher interface {
	Search(ctx context.Context, breedName string, page int) (*imagesearch.Result, error)
}

// ImageService proxies breed image searches.
type ImageService struct {
	searcher ImageSearcher
	logger   *zap.Logger
}

// NewImageService creates a new ImageService.
func NewImageService(searcher ImageSearcher, logger *zap.Logger) *ImageService {
	return &ImageService{searcher: searcher, logger: logger}
}

// SearchImages returns one page of images for breedName. Errors from the
// search client are returned unchanged so the transport can map them.
func (s *ImageService) SearchImages(ctx context.Context, breedName string, page int) (*imagesearch.Result, error) {
	breedName = strings.TrimSpace(breedName)
	if breedName == "" {
		return nil, domain.NewValidationError("breed parameter is required")
	}
	if page < 1 {
		page = 1
	}

	result, err := s.searcher.Search(ctx, breedName, page)
	if err != nil {
		s.logger.Warn("image search failed",
			zap.String("breed", breedName),
			zap.Int("page", page),
			zap.Error(err),
		)
		return nil, err
	}
	if result.Items == nil {
		result.Items = []imagesearch.Item{}
	}
	return result, nil
}
