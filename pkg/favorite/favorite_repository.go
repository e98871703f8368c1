package favorite

import (
	"context"
	"fmt"

	"wejv/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FavoriteRepository interface {
		Toggle(ctx context.Context, userID, menuID uint) (bool, error)
		Exists(ctx context.Context, userID, menuID uint) (bool, error)
		ListMenuIDs(ctx context.Context, userID uint) ([]uint, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle removes the pair when present and inserts it otherwise, returning the new state.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, menuID uint) (bool, error) {
	var isFavorite bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND menu_id = ?", userID, menuID).Delete(&entities.Favorite{})
		if res.Error != nil {
			return fmt.Errorf("delete favorite: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			isFavorite = false
			return nil
		}

		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entities.Favorite{UserID: userID, MenuID: menuID}).Error
		if err != nil {
			return fmt.Errorf("insert favorite: %w", err)
		}
		isFavorite = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return isFavorite, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, menuID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListMenuIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("menu_id desc").
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
