// Package memory holds map-backed repositories used when no database is
// configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	favoriteDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/favorite"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

type favoriteKey struct {
	userID  uuid.UUID
	breedID string
}

// FavoriteRepo is an in-memory FavoriteRepository.
type FavoriteRepo struct {
	mu    sync.RWMutex
	byKey map[favoriteKey]*favoriteDomain.Favorite
}

func NewFavoriteRepo() *FavoriteRepo {
	return &FavoriteRepo{
		byKey: make(map[favoriteKey]*favoriteDomain.Favorite),
	}
}

func (r *FavoriteRepo) FindByUserAndBreed(ctx context.Context, userID uuid.UUID, breedID string) (*favoriteDomain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byKey[favoriteKey{userID, breedID}]
	if !ok {
		return nil, domain.NewNotFoundError("Favorite", breedID)
	}
	return cloneFavorite(f), nil
}

func (r *FavoriteRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*favoriteDomain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*favoriteDomain.Favorite, 0)
	for k, f := range r.byKey {
		if k.userID == userID {
			out = append(out, cloneFavorite(f))
		}
	}

	// newest first, breed id as tie-breaker
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].BreedID() < out[j].BreedID()
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *FavoriteRepo) Save(ctx context.Context, f *favoriteDomain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{f.UserID(), f.BreedID()}
	if _, exists := r.byKey[key]; exists {
		return domain.NewConflictError("breed is already a favorite")
	}
	r.byKey[key] = cloneFavorite(f)
	return nil
}

func (r *FavoriteRepo) Update(ctx context.Context, f *favoriteDomain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{f.UserID(), f.BreedID()}
	if _, exists := r.byKey[key]; !exists {
		return domain.NewNotFoundError("Favorite", f.BreedID())
	}
	r.byKey[key] = cloneFavorite(f)
	return nil
}

func (r *FavoriteRepo) Delete(ctx context.Context, userID uuid.UUID, breedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID, breedID}
	if _, exists := r.byKey[key]; !exists {
		return domain.NewNotFoundError("Favorite", breedID)
	}
	delete(r.byKey, key)
	return nil
}

func (r *FavoriteRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.byKey {
		if k.userID == userID {
			delete(r.byKey, k)
			n++
		}
	}
	return n, nil
}

func cloneFavorite(f *favoriteDomain.Favorite) *favoriteDomain.Favorite {
	return favoriteDomain.Reconstruct(f.ID(), f.UserID(), f.BreedID(), f.Memo(), f.CreatedAt(), f.UpdatedAt())
}
