package user_memory

import (
	"context"
	"sync"
	"time"

	"jobboard/internal/models"
)

type Repository struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	tokens map[string]uint
	nextID uint
}

func NewUserRepository() *Repository {
	return &Repository{
		users:  make(map[uint]models.User),
		tokens: make(map[string]uint),
		nextID: 1,
	}
}

func (r *Repository) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user

	stored := r.users[user.ID]
	return &stored, nil
}

func (r *Repository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *Repository) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}

func (r *Repository) CreateToken(_ context.Context, token *models.ApiToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token.UserID
	return nil
}

func (r *Repository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.RLock()
	userID, ok := r.tokens[token]
	r.mu.RUnlock()

	if !ok {
		return nil, models.ErrTokenNotFound
	}
	return r.GetUserByID(ctx, userID)
}

// DeleteAllTokens revokes every issued token at once.
func (r *Repository) DeleteAllTokens(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = make(map[string]uint)
	return nil
}

func (r *Repository) DeleteToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return models.ErrTokenNotFound
	}
	delete(r.tokens, token)
	return nil
}
