package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// AuthService is the identity provider in front of the ledger. A username
// seen for the first time is registered on the spot.
type AuthService struct {
	repo domain.UserRepository
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type LoginInput struct {
	Username string
	Password string
}

// Login returns the user and whether this call created it.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, bool, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, false, domain.ErrInvalidUsername
	}
	if input.Password == "" {
		return nil, false, domain.ErrPasswordEmpty
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if err := existing.CheckPassword(input.Password); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, false, fmt.Errorf("auth service: lookup failed: %w", err)
	}

	user, err := domain.NewUser(username)
	if err != nil {
		return nil, false, err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, false, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, false, domain.ErrInvalidCredentials
		}
		return nil, false, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, true, nil
}
