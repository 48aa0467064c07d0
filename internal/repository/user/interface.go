package user_repository

import (
	"context"

	"jobboard/internal/models"
)

// Repository stores users and the bearer tokens issued to them.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	CreateToken(ctx context.Context, token *models.ApiToken) error
	// GetUserByToken resolves a bearer token to its owner.
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	DeleteToken(ctx context.Context, token string) error
}
