package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// Profile is a user's personal profile. Its ID is the identity provider's user ID.
type Profile struct {
	id               uuid.UUID
	email            string
	username         string
	firstName        string
	lastName         string
	dateOfBirth      *time.Time
	address          string
	phoneNumber      string
	favoriteBreed    string
	hasDogExperience bool
	avatarURL        string
	createdAt        time.Time
	updatedAt        time.Time
}

// Changes holds a partial profile update. Empty strings and nil pointers keep
// the current value.
type Changes struct {
	Username         string
	FirstName        string
	LastName         string
	DateOfBirth      *time.Time
	Address          string
	PhoneNumber      string
	FavoriteBreed    string
	HasDogExperience *bool
	AvatarURL        string
}

// NewProfile creates an empty profile for a user.
func NewProfile(userID uuid.UUID, email string) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	now := time.Now().UTC()
	return &Profile{
		id:        userID,
		email:     strings.TrimSpace(email),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Profile from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	email, username, firstName, lastName string,
	dateOfBirth *time.Time,
	address, phoneNumber, favoriteBreed string,
	hasDogExperience bool,
	avatarURL string,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:               id,
		email:            email,
		username:         username,
		firstName:        firstName,
		lastName:         lastName,
		dateOfBirth:      dateOfBirth,
		address:          address,
		phoneNumber:      phoneNumber,
		favoriteBreed:    favoriteBreed,
		hasDogExperience: hasDogExperience,
		avatarURL:        avatarURL,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (p *Profile) ID() uuid.UUID           { return p.id }
func (p *Profile) Email() string           { return p.email }
func (p *Profile) Username() string        { return p.username }
func (p *Profile) FirstName() string       { return p.firstName }
func (p *Profile) LastName() string        { return p.lastName }
func (p *Profile) DateOfBirth() *time.Time { return p.dateOfBirth }
func (p *Profile) Address() string         { return p.address }
func (p *Profile) PhoneNumber() string     { return p.phoneNumber }
func (p *Profile) FavoriteBreed() string   { return p.favoriteBreed }
func (p *Profile) HasDogExperience() bool  { return p.hasDogExperience }
func (p *Profile) AvatarURL() string       { return p.avatarURL }
func (p *Profile) CreatedAt() time.Time    { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time    { return p.updatedAt }

// --- Behavior ---

// Apply merges changes into the profile.
func (p *Profile) Apply(c Changes) error {
	if c.DateOfBirth != nil && c.DateOfBirth.After(time.Now()) {
		return domain.NewValidationError("date of birth cannot be in the future")
	}

	setIfPresent(&p.username, c.Username)
	setIfPresent(&p.firstName, c.FirstName)
	setIfPresent(&p.lastName, c.LastName)
	setIfPresent(&p.address, c.Address)
	setIfPresent(&p.phoneNumber, c.PhoneNumber)
	setIfPresent(&p.favoriteBreed, c.FavoriteBreed)
	setIfPresent(&p.avatarURL, c.AvatarURL)
	if c.DateOfBirth != nil {
		dob := c.DateOfBirth.UTC()
		p.dateOfBirth = &dob
	}
	if c.HasDogExperience != nil {
		p.hasDogExperience = *c.HasDogExperience
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetEmail records the email the identity provider reports, when known.
func (p *Profile) SetEmail(email string) {
	setIfPresent(&p.email, email)
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
