package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	favoriteDomain "github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/favorite"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// FavoriteModel is the GORM model for the favorite_breeds table.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_breeds_user_breed"`
	BreedID   string    `gorm:"column:breeds_id;type:varchar(100);not null;uniqueIndex:idx_favorite_breeds_user_breed"`
	Memo      string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (FavoriteModel) TableName() string { return "favorite_breeds" }

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) FindByUserAndBreed(ctx context.Context, userID uuid.UUID, breedID string) (*favoriteDomain.Favorite, error) {
	var model FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND breeds_id = ?", userID, breedID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Favorite", breedID)
		}
		return nil, err
	}
	return toFavoriteDomain(&model), nil
}

func (r *GormFavoriteRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*favoriteDomain.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	favorites := make([]*favoriteDomain.Favorite, len(models))
	for i := range models {
		favorites[i] = toFavoriteDomain(&models[i])
	}
	return favorites, nil
}

func (r *GormFavoriteRepository) Save(ctx context.Context, favorite *favoriteDomain.Favorite) error {
	model := toFavoriteModel(favorite)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("breed is already a favorite")
		}
		return err
	}
	return nil
}

func (r *GormFavoriteRepository) Update(ctx context.Context, favorite *favoriteDomain.Favorite) error {
	result := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("id = ?", favorite.ID()).
		Updates(map[string]interface{}{
			"memo":       favorite.Memo(),
			"updated_at": favorite.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Favorite", favorite.BreedID())
	}
	return nil
}

func (r *GormFavoriteRepository) Delete(ctx context.Context, userID uuid.UUID, breedID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND breeds_id = ?", userID, breedID).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Favorite", breedID)
	}
	return nil
}

func (r *GormFavoriteRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&FavoriteModel{})
	return result.RowsAffected, result.Error
}

// --- Conversions ---

func toFavoriteModel(f *favoriteDomain.Favorite) *FavoriteModel {
	return &FavoriteModel{
		ID:        f.ID(),
		UserID:    f.UserID(),
		BreedID:   f.BreedID(),
		Memo:      f.Memo(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}

func toFavoriteDomain(m *FavoriteModel) *favoriteDomain.Favorite {
	return favoriteDomain.Reconstruct(m.ID, m.UserID, m.BreedID, m.Memo, m.CreatedAt, m.UpdatedAt)
}
