package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nhplus/internal/auth/password"
	"nhplus/internal/records/models"
	"nhplus/internal/records/store/memtable"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
)

type InMemory struct {
	// createMu makes the username check and insert atomic.
	createMu sync.Mutex
	rows     *memtable.Table[id.UserID, *models.User]
}

func NewInMemory() *InMemory {
	return &InMemory{rows: memtable.New[id.UserID](clone)}
}

func (s *InMemory) Create(ctx context.Context, c models.UserCreation) (*models.User, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()
	if _, err := s.FindByUsername(ctx, c.Username); err == nil {
		return nil, fmt.Errorf("create user %q: %w", c.Username, sentinel.ErrAlreadyUsed)
	}
	return s.rows.Insert(func(uid id.UserID) *models.User {
		return models.NewUser(uid, c)
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	u, ok := s.rows.Get(userID)
	if !ok {
		return nil, fmt.Errorf("find user %s: %w", userID, sentinel.ErrNotFound)
	}
	return u, nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	matches := s.rows.List(func(u *models.User) bool { return u.Username == username })
	if len(matches) == 0 {
		return nil, fmt.Errorf("find user %q: %w", username, sentinel.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.User, error) {
	return s.rows.List(nil), nil
}

func (s *InMemory) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *InMemory) IsPasswordCorrect(ctx context.Context, username, plaintext string) (bool, error) {
	u, err := s.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return password.Matches(plaintext, u.PasswordHash)
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID) (*models.User, error) {
	u, ok := s.rows.Remove(userID)
	if !ok {
		return nil, fmt.Errorf("delete user %s: %w", userID, sentinel.ErrNotFound)
	}
	return u, nil
}
