package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Name: "tester", Email: email, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, creatorID uint, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:     title,
		Content:   "content of " + title,
		ImageURL:  "images/" + title + ".png",
		CreatorID: creatorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{
		Title:     "Hello",
		Content:   "World",
		ImageURL:  "images/hello.png",
		CreatorID: user.ID,
	}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Equal(t, "images/hello.png", got.ImageURL)
	assert.Equal(t, user.ID, got.CreatorID)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_ListPage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		createTestPost(t, db, user.ID, fmt.Sprintf("post-%d", i))
	}

	// Page size 2: pages 1 and 2 are full, page 3 holds the remainder and
	// page 4 is empty. The total is reported on every page.
	page1, total, err := repo.ListPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "post-1", page1[0].Title)
	assert.Equal(t, "post-2", page1[1].Title)

	page2, total, err := repo.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page2, 2)
	assert.Equal(t, "post-3", page2[0].Title)
	assert.Equal(t, "post-4", page2[1].Title)

	page3, total, err := repo.ListPage(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page3, 1)
	assert.Equal(t, "post-5", page3[0].Title)

	page4, total, err := repo.ListPage(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, page4)
}

func TestPostRepository_ListPage_TieBreakOnID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Identical creation timestamps must still produce a stable,
	// non-overlapping page order.
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 1; i <= 4; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("tied-%d", i),
			Content:   "c",
			ImageURL:  "images/t.png",
			CreatorID: user.ID,
			CreatedAt: at,
			UpdatedAt: at,
		}
		require.NoError(t, db.Create(post).Error)
	}

	page1, _, err := repo.ListPage(ctx, 1, 2)
	require.NoError(t, err)
	page2, _, err := repo.ListPage(ctx, 2, 2)
	require.NoError(t, err)

	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	assert.Equal(t, "tied-1", page1[0].Title)
	assert.Equal(t, "tied-2", page1[1].Title)
	assert.Equal(t, "tied-3", page2[0].Title)
	assert.Equal(t, "tied-4", page2[1].Title)
}

func TestPostRepository_ListPage_InvalidPage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	for _, page := range []int{0, -1} {
		_, _, err := repo.ListPage(context.Background(), page, 2)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	}
}

func TestPostRepository_ListPage_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	posts, total, err := repo.ListPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, posts)
}

func TestPostRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, db, user.ID, "before")
	post.Title = "after"
	post.Content = "updated content"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "updated content", got.Content)
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Update(context.Background(), &models.Post{ID: 777, Title: "x", Content: "y", ImageURL: "images/z.png"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_Update_CreatorIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, db, owner.ID, "stable")
	post.CreatorID = other.ID
	post.Title = "renamed"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, owner.ID, got.CreatorID)
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, db, user.ID, "doomed")
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)

	// The second delete of the same id is visible, not silently absorbed.
	err = repo.Delete(ctx, post.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Delete(context.Background(), 999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
