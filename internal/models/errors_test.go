package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), http.StatusUnprocessableEntity},
		{"field validation", NewFieldValidationError("a", "b"), http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("Post", 1), http.StatusNotFound},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"storage", NewStorageError(errors.New("io")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/fields", func(c *fiber.Ctx) error {
		return RespondWithError(c, NewFieldValidationError("title must not be empty", "image must be provided"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, errors.New("internal detail"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fields", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body ErrorResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, CodeValidation, body.Code)
	assert.Len(t, body.Fields, 2)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
