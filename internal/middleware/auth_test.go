package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		userID := c.Locals("userID")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": userID})
	})

	generateToken := func(secret string, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}
	validClaims := func(userID uint, exp time.Duration) jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"exp": time.Now().Add(exp).Unix(),
		}
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + generateToken(secret, validClaims(123, time.Hour)),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + generateToken(secret, validClaims(123, -time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			authHeader:     "Bearer " + generateToken("some-other-secret-entirely-1234567890", validClaims(123, time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Missing Subject",
			authHeader: "Bearer " + generateToken(secret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Non-numeric Subject",
			authHeader: "Bearer " + generateToken(secret, jwt.MapClaims{
				"sub": "not-a-number",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
					assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				}
			}
		})
	}
}
