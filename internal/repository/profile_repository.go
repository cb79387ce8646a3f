package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	profileDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/profile"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email            string     `gorm:"type:varchar(255);not null;default:''"`
	Username         string     `gorm:"type:varchar(50)"`
	FirstName        string     `gorm:"type:varchar(100)"`
	LastName         string     `gorm:"type:varchar(100)"`
	DateOfBirth      *time.Time `gorm:"type:date"`
	Address          string     `gorm:"type:text"`
	PhoneNumber      string     `gorm:"type:varchar(30)"`
	FavoriteBreed    string     `gorm:"type:varchar(100)"`
	HasDogExperience bool       `gorm:"not null;default:false"`
	AvatarURL        string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

func (ProfileModel) TableName() string { return "profiles" }

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Profile", id.String())
		}
		return nil, err
	}
	return toProfileDomain(&model), nil
}

func (r *GormProfileRepository) Upsert(ctx context.Context, p *profileDomain.Profile) error {
	model := toProfileModel(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(profileUpdateColumns),
		}).
		Create(model).Error
}

func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProfileModel{}).Error
}

// created_at is set once on insert.
var profileUpdateColumns = []string{
	"email", "username", "first_name", "last_name", "date_of_birth", "address",
	"phone_number", "favorite_breed", "has_dog_experience", "avatar_url", "updated_at",
}

// --- Conversions ---

func toProfileModel(p *profileDomain.Profile) *ProfileModel {
	return &ProfileModel{
		ID:               p.ID(),
		Email:            p.Email(),
		Username:         p.Username(),
		FirstName:        p.FirstName(),
		LastName:         p.LastName(),
		DateOfBirth:      p.DateOfBirth(),
		Address:          p.Address(),
		PhoneNumber:      p.PhoneNumber(),
		FavoriteBreed:    p.FavoriteBreed(),
		HasDogExperience: p.HasDogExperience(),
		AvatarURL:        p.AvatarURL(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toProfileDomain(m *ProfileModel) *profileDomain.Profile {
	return profileDomain.Reconstruct(
		m.ID,
		m.Email, m.Username, m.FirstName, m.LastName,
		m.DateOfBirth,
		m.Address, m.PhoneNumber, m.FavoriteBreed,
		m.HasDogExperience,
		m.AvatarURL,
		m.CreatedAt, m.UpdatedAt,
	)
}
