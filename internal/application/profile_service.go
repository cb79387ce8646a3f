package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	profileDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/profile"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

const dateLayout = "2006-01-02"

// UpdateProfileRequest is the request DTO for creating or updating a profile.
// Omitted or empty fields keep their current values.
type UpdateProfileRequest struct {
	Username         string `json:"username" binding:"omitempty,max=50"`
	FirstName        string `json:"first_name" binding:"omitempty,max=100"`
	LastName         string `json:"last_name" binding:"omitempty,max=100"`
	DateOfBirth      string `json:"date_of_birth"`
	Address          string `json:"address"`
	PhoneNumber      string `json:"phone_number" binding:"omitempty,max=30"`
	FavoriteBreed    string `json:"favorite_breed" binding:"omitempty,max=100"`
	HasDogExperience *bool  `json:"has_dog_experience"`
	AvatarURL        string `json:"avatar_url" binding:"omitempty,url"`
}

// ProfileDTO is the API response representation of a profile.
type ProfileDTO struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	DateOfBirth      *string   `json:"date_of_birth"`
	Address          string    `json:"address"`
	PhoneNumber      string    `json:"phone_number"`
	FavoriteBreed    string    `json:"favorite_breed"`
	HasDogExperience bool      `json:"has_dog_experience"`
	AvatarURL        string    `json:"avatar_url"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileService implements use cases for user profiles.
type ProfileService struct {
	repo   profileDomain.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo profileDomain.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// GetProfile returns the user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toProfileDTO(p)
	return &result, nil
}

// UpsertProfile applies req to the user's profile, creating it on first use.
// email comes from the access token and refreshes the stored one when present.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, email string, req UpdateProfileRequest) (*ProfileDTO, error) {
	changes, err := req.toChanges()
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, userID)
	switch {
	case err == nil:
		p.SetEmail(email)
	case domain.IsNotFound(err):
		p, err = profileDomain.NewProfile(userID, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := p.Apply(changes); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.Error("failed to save profile", zap.Error(err))
		return nil, err
	}

	s.logger.Info("profile saved", zap.String("user_id", userID.String()))
	result := toProfileDTO(p)
	return &result, nil
}

// DeleteProfile removes the user's profile. Deleting a missing profile is not an error.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	s.logger.Info("profile deleted", zap.String("user_id", userID.String()))
	return nil
}

func (r UpdateProfileRequest) toChanges() (profileDomain.Changes, error) {
	c := profileDomain.Changes{
		Username:         r.Username,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Address:          r.Address,
		PhoneNumber:      r.PhoneNumber,
		FavoriteBreed:    r.FavoriteBreed,
		HasDogExperience: r.HasDogExperience,
		AvatarURL:        r.AvatarURL,
	}
	if dob := strings.TrimSpace(r.DateOfBirth); dob != "" {
		t, err := time.Parse(dateLayout, dob)
		if err != nil {
			return c, domain.NewValidationError("date_of_birth must be formatted as YYYY-MM-DD")
		}
		c.DateOfBirth = &t
	}
	return c, nil
}

func toProfileDTO(p *profileDomain.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:               p.ID(),
		Email:            p.Email(),
		Username:         p.Username(),
		FirstName:        p.FirstName(),
		LastName:         p.LastName(),
		Address:          p.Address(),
		PhoneNumber:      p.PhoneNumber(),
		FavoriteBreed:    p.FavoriteBreed(),
		HasDogExperience: p.HasDogExperience(),
		AvatarURL:        p.AvatarURL(),
		UpdatedAt:        p.UpdatedAt(),
	}
	if dob := p.DateOfBirth(); dob != nil {
		s := dob.Format(dateLayout)
		dto.DateOfBirth = &s
	}
	return dto
}
