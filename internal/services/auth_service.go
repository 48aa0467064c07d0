package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/models"
	user_repository "jobboard/internal/repository/user"
)

type AuthService struct {
	users user_repository.Repository
	log   *slog.Logger
}

func NewAuthService(users user_repository.Repository, log *slog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Login exchanges credentials for a fresh bearer token. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the response
// doesn't reveal which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.users.CreateToken(ctx, &models.ApiToken{Token: token, UserID: user.ID}); err != nil {
		s.log.Error("Failed to persist api token", slog.String("error", err.Error()))
		return "", err
	}

	s.log.Info("User logged in", slog.Uint64("user_id", uint64(user.ID)))
	return token, nil
}

// Logout revokes a bearer token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.users.DeleteToken(ctx, token)
	if err != nil && !errors.Is(err, models.ErrTokenNotFound) {
		s.log.Error("Failed to delete api token", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return s.users.GetUserByToken(ctx, token)
}
