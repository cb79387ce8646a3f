package favorite

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	// FindByUserAndBreed returns the user's favorite for a breed, or a not-found error.
	FindByUserAndBreed(ctx context.Context, userID uuid.UUID, breedID string) (*Favorite, error)

	// FindByUserID returns the user's favorites, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Favorite, error)

	// Save persists a new favorite; a duplicate (user, breed) pair is a conflict error.
	Save(ctx context.Context, favorite *Favorite) error

	// Update persists memo changes. Last write wins.
	Update(ctx context.Context, favorite *Favorite) error

	// Delete removes the user's favorite for a breed, or returns a not-found error.
	Delete(ctx context.Context, userID uuid.UUID, breedID string) error

	// DeleteByUserID removes every favorite of the user and returns how many were removed.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
