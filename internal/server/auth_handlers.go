package server

import (
	"fmt"
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles PUT /auth/signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	var fields []string
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields = append(fields, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fields = append(fields, err.Error())
	}
	if err := validation.ValidateName(req.Name); err != nil {
		fields = append(fields, err.Error())
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, models.NewFieldValidationError(fields...))
	}

	existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, models.NewFieldValidationError("email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewStorageError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"userId":  user.ID,
	})
}

// Login handles POST /auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewStorageError(err))
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"userId": user.ID,
	})
}

// generateToken creates a 1-hour HS256 JWT for the given user.
func (s *Server) generateToken(userID uint, email string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
