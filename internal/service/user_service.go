package service

import (
	"context"

	"quill/internal/repository"
)

// UserService handles the self-scoped user operations: reading and updating
// the caller's status line.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetStatus returns the user's current status text.
func (s *UserService) GetStatus(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// UpdateStatus replaces the user's status text. The status is free text
// owned solely by the user, so no further validation applies.
func (s *UserService) UpdateStatus(ctx context.Context, userID uint, status string) (string, error) {
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return "", err
	}
	return status, nil
}
