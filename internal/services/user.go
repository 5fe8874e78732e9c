package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"familyagenda/internal/domain"
)

type userService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, name, lastName *string) (*domain.User, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, domain.NewValidationError("name cannot be empty")
	}
	user, err := s.userRepo.Update(ctx, userID, name, lastName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
