package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
	favoriteDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/favorite"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/events"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/kafka"
)

const (
	eventSource = "service-breed-catalog"

	// maxConcurrentLookups bounds breed lookups when expanding a favorites list.
	maxConcurrentLookups = 4
)

// EventPublisher publishes CloudEvents. *kafka.Producer implements it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// BreedLookup resolves a breed id to its canonical record.
type BreedLookup interface {
	Lookup(ctx context.Context, id string) (breed.Breed, error)
}

// AddFavoriteRequest is the request DTO for adding a favorite.
type AddFavoriteRequest struct {
	BreedID string `json:"breed_id" binding:"required"`
	Memo    string `json:"memo"`
}

// UpdateFavoriteRequest is the request DTO for replacing a favorite's memo.
type UpdateFavoriteRequest struct {
	Memo *string `json:"memo" binding:"required"`
}

// FavoriteDTO is the API response representation of a favorite.
type FavoriteDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BreedID   string    `json:"breed_id"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Breed is set only when expansion was requested and the lookup succeeded.
	Breed *breed.Breed `json:"breed"`
}

// FavoriteService implements use cases for a user's favorite breeds.
type FavoriteService struct {
	repo      favoriteDomain.FavoriteRepository
	breeds    BreedLookup
	publisher EventPublisher
	logger    *zap.Logger
}

// NewFavoriteService creates a new FavoriteService. publisher may be nil, in
// which case no events are published.
func NewFavoriteService(
	repo favoriteDomain.FavoriteRepository,
	breeds BreedLookup,
	publisher EventPublisher,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{repo: repo, breeds: breeds, publisher: publisher, logger: logger}
}

// AddFavorite marks a breed as a favorite of the user. Adding the same breed
// twice is a conflict.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID uuid.UUID, req AddFavoriteRequest) (*FavoriteDTO, error) {
	fav, err := favoriteDomain.NewFavorite(userID, req.BreedID, req.Memo)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, fav); err != nil {
		return nil, err
	}

	s.logger.Info("favorite added",
		zap.String("user_id", userID.String()),
		zap.String("breed_id", fav.BreedID()),
	)
	s.publishFavoriteEvent(ctx, events.FavoriteAdded, fav)

	result := toFavoriteDTO(fav)
	return &result, nil
}

// UpdateMemo replaces the memo of an existing favorite. Last write wins.
func (s *FavoriteService) UpdateMemo(ctx context.Context, userID uuid.UUID, breedID string, req UpdateFavoriteRequest) (*FavoriteDTO, error) {
	breedID, err := favoriteDomain.NormalizeBreedID(breedID)
	if err != nil {
		return nil, err
	}
	fav, err := s.repo.FindByUserAndBreed(ctx, userID, breedID)
	if err != nil {
		return nil, err
	}
	if err := fav.UpdateMemo(*req.Memo); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, fav); err != nil {
		return nil, err
	}

	s.logger.Info("favorite memo updated",
		zap.String("user_id", userID.String()),
		zap.String("breed_id", breedID),
	)
	s.publishFavoriteEvent(ctx, events.FavoriteUpdated, fav)

	result := toFavoriteDTO(fav)
	return &result, nil
}

// RemoveFavorite deletes the user's favorite for a breed.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uuid.UUID, breedID string) error {
	breedID, err := favoriteDomain.NormalizeBreedID(breedID)
	if err != nil {
		return err
	}
	fav, err := s.repo.FindByUserAndBreed(ctx, userID, breedID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, breedID); err != nil {
		return err
	}

	s.logger.Info("favorite removed",
		zap.String("user_id", userID.String()),
		zap.String("breed_id", breedID),
	)
	s.publishFavoriteEvent(ctx, events.FavoriteRemoved, fav)
	return nil
}

// GetFavorite returns one favorite, optionally expanded with its breed.
func (s *FavoriteService) GetFavorite(ctx context.Context, userID uuid.UUID, breedID string, expand bool) (*FavoriteDTO, error) {
	breedID, err := favoriteDomain.NormalizeBreedID(breedID)
	if err != nil {
		return nil, err
	}
	fav, err := s.repo.FindByUserAndBreed(ctx, userID, breedID)
	if err != nil {
		return nil, err
	}
	result := toFavoriteDTO(fav)
	if expand {
		result.Breed = s.lookupBreed(ctx, fav.BreedID())
	}
	return &result, nil
}

// ListFavorites returns the user's favorites, newest first. With expand set,
// each favorite carries its breed; a breed that cannot be resolved is left nil.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID, expand bool) ([]FavoriteDTO, error) {
	favs, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	dtos := make([]FavoriteDTO, len(favs))
	for i, f := range favs {
		dtos[i] = toFavoriteDTO(f)
	}
	if !expand || len(dtos) == 0 {
		return dtos, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i := range dtos {
		g.Go(func() error {
			dtos[i].Breed = s.lookupBreed(gctx, dtos[i].BreedID)
			return nil
		})
	}
	_ = g.Wait()
	return dtos, nil
}

// RemoveAllForUser deletes every favorite of the user. No events are
// published; the caller is reacting to an account deletion.
func (s *FavoriteService) RemoveAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites: %w", err)
	}
	s.logger.Info("favorites purged",
		zap.String("user_id", userID.String()),
		zap.Int64("count", n),
	)
	return n, nil
}

func (s *FavoriteService) lookupBreed(ctx context.Context, breedID string) *breed.Breed {
	if s.breeds == nil {
		return nil
	}
	b, err := s.breeds.Lookup(ctx, breedID)
	if err != nil {
		s.logger.Warn("could not resolve favorite breed",
			zap.String("breed_id", breedID),
			zap.Error(err),
		)
		return nil
	}
	return &b
}

func (s *FavoriteService) publishFavoriteEvent(ctx context.Context, eventType string, fav *favoriteDomain.Favorite) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, events.FavoriteEvent{
		FavoriteID: fav.ID(),
		UserID:     fav.UserID(),
		BreedID:    fav.BreedID(),
		Memo:       fav.Memo(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicFavoriteEvents, fav.UserID().String(), cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicFavoriteEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toFavoriteDTO(f *favoriteDomain.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:        f.ID(),
		UserID:    f.UserID(),
		BreedID:   f.BreedID(),
		Memo:      f.Memo(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}
