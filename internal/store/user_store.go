package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hosfile/prepay-api/internal/models"
)

// ErrUsernameTaken is returned when a username is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore keeps staff accounts in memory, keyed by id.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserStore constructs an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: map[string]models.User{}}
}

// Create inserts a new account with a fresh id.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	user := models.User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	s.users[user.ID] = user
	return &user, nil
}

// GetByID returns the account or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetByUsername scans for the account with the given username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
