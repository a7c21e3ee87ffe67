package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /feed/posts?page=N.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	posts, totalItems, err := s.postService.GetPosts(c.UserContext(), page)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(fiber.Map{
		"message":    "Fetched posts successfully",
		"posts":      posts,
		"totalItems": totalItems,
	})
}

// CreatePost handles POST /feed/post (multipart: title, content, image file).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	image, contentType, err := readFormFile(c, "image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Unable to read uploaded file"))
	}

	post, creator, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:           userID,
		Title:            c.FormValue("title"),
		Content:          c.FormValue("content"),
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
		"creator": creator,
	})
}

// GetPost handles GET /feed/post/:postId.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post fetched",
		"post":    post,
	})
}

// UpdatePost handles PUT /feed/post/:postId (multipart: title, content,
// optional image file, "image" form field carrying the existing reference).
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	image, contentType, err := readFormFile(c, "image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Unable to read uploaded file"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:           userID,
		PostID:           postID,
		Title:            c.FormValue("title"),
		Content:          c.FormValue("content"),
		Image:            image,
		ImageContentType: contentType,
		ImageRef:         c.FormValue("image"),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated",
		"post":    post,
	})
}

// DeletePost handles DELETE /feed/post/:postId.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetStatus handles GET /feed/status.
func (s *Server) GetStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	status, err := s.userService.GetStatus(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Status fetched successfully",
		"status":  status,
	})
}

// UpdateStatus handles PUT /feed/status.
func (s *Server) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	status, err := s.userService.UpdateStatus(c.UserContext(), userID, req.Status)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"status":  status,
	})
}
