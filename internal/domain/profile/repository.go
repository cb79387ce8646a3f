package profile

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// Upsert inserts the profile or overwrites the stored one.
	Upsert(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
