package server

import (
	"errors"
	"io"
	"mime/multipart"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 422 JSON response and returns errResponseWritten; callers
// check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// readFormFile returns the bytes and declared content type of an uploaded
// multipart file, or ("", nil, nil) when no file was attached.
func readFormFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// Fiber reports a missing file as an error; the caller decides
		// whether the file is required.
		return nil, "", nil
	}
	return readMultipartFile(file)
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return content, file.Header.Get("Content-Type"), nil
}
