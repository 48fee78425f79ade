package user

import (
	"context"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

// Store is the persistence contract for user accounts. Usernames are
// unique and compared exactly.
type Store interface {
	Create(ctx context.Context, c models.UserCreation) (*models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	IsPasswordCorrect(ctx context.Context, username, plaintext string) (bool, error)
	Delete(ctx context.Context, userID id.UserID) (*models.User, error)
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*SQLStore)(nil)
)

func clone(u *models.User) *models.User {
	out := *u
	return &out
}
