// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// ListPage returns one 1-indexed page of posts in stable creation order
	// together with the total number of posts.
	ListPage(ctx context.Context, page, pageSize int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post

	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// feedPage bundles one page of posts with the total count so both travel
// through the cache together.
type feedPage struct {
	Posts []*models.Post `json:"posts"`
	Total int64          `json:"total"`
}

func (r *postRepository) ListPage(ctx context.Context, page, pageSize int) ([]*models.Post, int64, error) {
	if page < 1 {
		return nil, 0, models.NewValidationError("page must be 1 or greater")
	}
	if pageSize < 1 {
		return nil, 0, models.NewValidationError("page size must be 1 or greater")
	}

	var result feedPage
	fetch := func() error {
		if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&result.Total).Error; err != nil {
			return models.NewStorageError(err)
		}
		// Creation order with the id as tie-breaker keeps pages
		// deterministic and non-overlapping across requests.
		if err := r.db.WithContext(ctx).
			Order("created_at ASC, id ASC").
			Limit(pageSize).
			Offset((page - 1) * pageSize).
			Find(&result.Posts).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	}

	var err error
	if page == 1 {
		err = cache.Aside(ctx, cache.FeedKey(), &result, cache.FeedTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, 0, err
	}
	return result.Posts, result.Total, nil
}

// Update rewrites the mutable columns of an existing post. creator_id is
// never part of the update set.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":     post.Title,
			"content":   post.Content,
			"image_url": post.ImageURL,
		})
	if res.Error != nil {
		return models.NewStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateFeed(ctx)
	return nil
}

// Delete removes the post record. Deleting an absent post surfaces
// NotFound rather than silently succeeding, so a double delete is visible
// to the caller.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx)
	return nil
}
