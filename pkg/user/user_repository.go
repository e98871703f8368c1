package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wejv/domain"
	"wejv/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		CreateWithAuthor(ctx context.Context, user *entities.User) (uint, error)
		ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error)
		FindByLogin(ctx context.Context, login string) (*entities.User, error)
		FindByID(ctx context.Context, id uint) (*entities.User, error)
		TouchLastLogin(ctx context.Context, id uint, at time.Time) error
		AuthorIDForUser(ctx context.Context, userID uint) (uint, bool, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func authorName(user *entities.User) string {
	return strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
}

// CreateWithAuthor inserts the user together with a new author row carrying its full name.
// An author of that name that already exists belongs to someone else's recipes and is never
// reused: the call fails with ErrAuthorClaimed. Returns the new author id.
func (r *userRepository) CreateWithAuthor(ctx context.Context, user *entities.User) (uint, error) {
	var authorID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		author := &entities.Author{Name: authorName(user)}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(author)
		if res.Error != nil {
			return fmt.Errorf("insert author: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAuthorClaimed
		}

		if err := tx.Create(&entities.UserAuthor{UserID: user.ID, AuthorID: author.ID}).Error; err != nil {
			return fmt.Errorf("link author: %w", err)
		}
		authorID = author.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return authorID, nil
}

func (r *userRepository) ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("name = ? OR email = ?", name, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("name = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepository) AuthorIDForUser(ctx context.Context, userID uint) (uint, bool, error) {
	var link entities.UserAuthor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return link.AuthorID, true, nil
}
