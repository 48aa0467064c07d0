package user_postgres

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"jobboard/internal/models"
)

type Repository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewUserRepository(db *gorm.DB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.log.Error("Failed to create user", slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		r.log.Error("Failed to load user by email", slog.String("error", err.Error()))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		r.log.Error("Failed to load user", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateToken(ctx context.Context, token *models.ApiToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		r.log.Error("Failed to create api token", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (r *Repository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	var record models.ApiToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTokenNotFound
		}
		r.log.Error("Failed to load api token", slog.String("error", err.Error()))
		return nil, err
	}
	return r.GetUserByID(ctx, record.UserID)
}

func (r *Repository) DeleteToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.ApiToken{})
	if result.Error != nil {
		r.log.Error("Failed to delete api token", slog.String("error", result.Error.Error()))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrTokenNotFound
	}
	return nil
}
