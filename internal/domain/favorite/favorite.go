package favorite

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

const (
	// MaxMemoLength bounds the free-text memo, in characters.
	MaxMemoLength = 1000
	// MaxBreedIDLength bounds a breed identifier, in characters.
	MaxBreedIDLength = 100
)

// Favorite is the aggregate root for a user's favorite breed and personal memo.
// At most one favorite exists per (user, breed) pair; the store enforces it.
type Favorite struct {
	id        uuid.UUID
	userID    uuid.UUID
	breedID   string
	memo      string
	createdAt time.Time
	updatedAt time.Time
}

// NewFavorite creates a favorite. breedID is the breed source's identifier and
// is not checked against the catalog.
func NewFavorite(userID uuid.UUID, breedID, memo string) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	breedID, err := NormalizeBreedID(breedID)
	if err != nil {
		return nil, err
	}
	if err := validateMemo(memo); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Favorite{
		id:        uuid.New(),
		userID:    userID,
		breedID:   breedID,
		memo:      memo,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NormalizeBreedID trims a breed identifier and checks it is present and
// within MaxBreedIDLength.
func NormalizeBreedID(breedID string) (string, error) {
	breedID = strings.TrimSpace(breedID)
	if breedID == "" {
		return "", domain.NewValidationError("breed ID is required")
	}
	if utf8.RuneCountInString(breedID) > MaxBreedIDLength {
		return "", domain.NewValidationError("breed ID must be at most 100 characters")
	}
	return breedID, nil
}

// Reconstruct rebuilds a Favorite from persistence data (no validation).
func Reconstruct(id, userID uuid.UUID, breedID, memo string, createdAt, updatedAt time.Time) *Favorite {
	return &Favorite{
		id:        id,
		userID:    userID,
		breedID:   breedID,
		memo:      memo,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (f *Favorite) ID() uuid.UUID        { return f.id }
func (f *Favorite) UserID() uuid.UUID    { return f.userID }
func (f *Favorite) BreedID() string      { return f.breedID }
func (f *Favorite) Memo() string         { return f.memo }
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }
func (f *Favorite) UpdatedAt() time.Time { return f.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the favorite belongs to the given user.
func (f *Favorite) IsOwnedBy(userID uuid.UUID) bool {
	return f.userID == userID
}

// UpdateMemo replaces the memo. An empty memo is allowed.
func (f *Favorite) UpdateMemo(memo string) error {
	if err := validateMemo(memo); err != nil {
		return err
	}
	f.memo = memo
	f.updatedAt = time.Now().UTC()
	return nil
}

func validateMemo(memo string) error {
	if utf8.RuneCountInString(memo) > MaxMemoLength {
		return domain.NewValidationError("memo must be at most 1000 characters")
	}
	return nil
}
