// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"quill/internal/assets"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
)

// PostService orchestrates the post lifecycle: creation, retrieval,
// paginated listing, update and deletion, together with the ownership checks
// and image-asset bookkeeping each operation requires.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	assets   assets.Store
	accepted map[string]bool
	pageSize int
	logger   *slog.Logger
}

// CreatePostInput carries an already-authenticated user id plus the parsed
// request fields for a new post.
type CreatePostInput struct {
	UserID           uint
	Title            string
	Content          string
	Image            []byte
	ImageContentType string
}

// UpdatePostInput carries the fields for a full post update. Image holds a
// newly uploaded file when present; ImageRef is the caller-supplied existing
// reference used when no new file was uploaded.
type UpdatePostInput struct {
	UserID           uint
	PostID           uint
	Title            string
	Content          string
	Image            []byte
	ImageContentType string
	ImageRef         string
}

// DeletePostInput identifies the post to delete and the caller.
type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService wires the post orchestrator. acceptedImageTypes is the set
// of permitted MIME types (configuration, not hard-coded); pageSize is the
// fixed feed page size.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	store assets.Store,
	acceptedImageTypes map[string]bool,
	pageSize int,
	logger *slog.Logger,
) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		assets:   store,
		accepted: acceptedImageTypes,
		pageSize: pageSize,
		logger:   logger,
	}
}

// CreatePost validates the input, stores the image asset, creates the post
// record bound to its creator, and records the owner's back-reference.
// The back-reference step is best-effort: a failure there leaves an orphaned
// post that is logged as a recoverable inconsistency, not surfaced to the
// caller.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, *models.CreatorSummary, error) {
	var fields []string
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, "title must not be empty")
	}
	if strings.TrimSpace(in.Content) == "" {
		fields = append(fields, "content must not be empty")
	}
	if msg, ok := s.checkImage(in.Image, in.ImageContentType); !ok {
		fields = append(fields, msg)
	}
	if len(fields) > 0 {
		return nil, nil, models.NewFieldValidationError(fields...)
	}

	// Asset first: if the image cannot be stored, no post record exists.
	imageRef, err := s.assets.Save(ctx, in.Image, in.ImageContentType)
	if err != nil {
		return nil, nil, models.NewStorageError(err)
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  imageRef,
		CreatorID: in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	// The post row exists from here on; a failed back-reference write is a
	// recoverable inconsistency, never a failed request.
	if err := s.userRepo.AddPostRef(ctx, in.UserID, post.ID); err != nil {
		s.logger.WarnContext(ctx, "post created without owner back-reference",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
	}

	creator, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}

	return post, &models.CreatorSummary{ID: creator.ID, Name: creator.Name}, nil
}

// GetPosts returns the requested 1-indexed feed page and the total number of
// posts. Any authenticated caller may list any page; the page size is fixed.
func (s *PostService) GetPosts(ctx context.Context, page int) ([]*models.Post, int64, error) {
	if page == 0 {
		page = 1
	}
	return s.postRepo.ListPage(ctx, page, s.pageSize)
}

// GetPost fetches a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost replaces a post's title, content and image reference. Only the
// creator may update a post; the existence check runs before the ownership
// check. When the effective image reference changes, the superseded asset is
// removed best-effort before the authoritative record update.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	var fields []string
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, "title must not be empty")
	}
	if strings.TrimSpace(in.Content) == "" {
		fields = append(fields, "content must not be empty")
	}
	if len(in.Image) > 0 {
		if msg, ok := s.checkImage(in.Image, in.ImageContentType); !ok {
			fields = append(fields, msg)
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	// A new upload wins; otherwise the caller must name the existing
	// reference explicitly instead of relying on the stored one.
	imageRef := in.ImageRef
	if len(in.Image) > 0 {
		imageRef, err = s.assets.Save(ctx, in.Image, in.ImageContentType)
		if err != nil {
			return nil, models.NewStorageError(err)
		}
	}
	if imageRef == "" {
		return nil, models.NewFieldValidationError("image reference must not be empty")
	}

	if imageRef != post.ImageURL {
		s.removeAsset(ctx, post.ImageURL, post.ID)
	}

	post.Title = in.Title
	post.Content = in.Content
	post.ImageURL = imageRef

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post, its asset and its owner back-reference. Asset
// and back-reference cleanup are best-effort; the repository delete is the
// authoritative, failure-bearing step.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.CreatorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	s.removeAsset(ctx, post.ImageURL, post.ID)

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}

	if err := s.userRepo.RemovePostRef(ctx, in.UserID, in.PostID); err != nil {
		s.logger.WarnContext(ctx, "post deleted without removing owner back-reference",
			slog.Uint64("post_id", uint64(in.PostID)),
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// removeAsset deletes an asset best-effort: the failure is logged and
// counted, never escalated into the request's result.
func (s *PostService) removeAsset(ctx context.Context, ref string, postID uint) {
	if ref == "" {
		return
	}
	if err := s.assets.Remove(ctx, ref); err != nil {
		middleware.AssetCleanupFailures.Inc()
		s.logger.WarnContext(ctx, "failed to remove superseded asset",
			slog.String("asset_ref", ref),
			slog.Uint64("post_id", uint64(postID)),
			slog.String("error", err.Error()),
		)
	}
}

// checkImage validates presence and MIME type of an uploaded image against
// the configured accepted set. The declared content type must agree with
// what the bytes actually look like.
func (s *PostService) checkImage(data []byte, contentType string) (string, bool) {
	if len(data) == 0 {
		return "image must be provided", false
	}

	declared := normalizeContentType(contentType)
	if declared == "" {
		declared = http.DetectContentType(data)
	}
	if !s.accepted[declared] {
		return "image type " + declared + " is not accepted", false
	}

	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "image/") && detected != declared {
		return "image content does not match its declared type", false
	}
	return "", true
}

func normalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	return ct
}
