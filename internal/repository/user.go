package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users, including the
// denormalized index of post ids a user owns.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	AddPostRef(ctx context.Context, userID, postID uint) error
	RemovePostRef(ctx context.Context, userID, postID uint) error
	PostRefs(ctx context.Context, userID uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Email already exists")
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// AddPostRef records postID in the owner's back-reference index. The insert
// is atomic at the storage layer; replaying it is a no-op.
func (r *userRepository) AddPostRef(ctx context.Context, userID, postID uint) error {
	ref := models.PostRef{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ref).Error
	if err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *userRepository) RemovePostRef(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostRef{}).Error
	if err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *userRepository) PostRefs(ctx context.Context, userID uint) ([]uint, error) {
	var postIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.PostRef{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, post_id ASC").
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return postIDs, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
