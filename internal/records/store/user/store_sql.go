package user

import (
	"context"
	"errors"
	"fmt"

	"nhplus/internal/auth/password"
	"nhplus/internal/platform/database"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
)

const selectUsers = `SELECT id, username, password_hash FROM users`

type SQLStore struct {
	db *database.DB
}

func NewSQL(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Create checks for a taken username inside the insert transaction so the
// caller gets sentinel.ErrAlreadyUsed instead of a driver constraint error.
func (s *SQLStore) Create(ctx context.Context, c models.UserCreation) (*models.User, error) {
	var created *models.User
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		exists, err := s.Exists(ctx, c.Username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("create user %q: %w", c.Username, sentinel.ErrAlreadyUsed)
		}
		var uid int64
		err = s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(
			`INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`),
			c.Username, c.PasswordHash,
		).Scan(&uid)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		created = models.NewUser(id.UserID(uid), c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *SQLStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectUsers+` WHERE id = ?`), int64(userID))
	u, err := scanUser(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find user %s", userID), err)
	}
	return u, nil
}

func (s *SQLStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectUsers+` WHERE username = ?`), username)
	u, err := scanUser(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find user %q", username), err)
	}
	return u, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]*models.User, error) {
	const op = "list users"
	rows, err := s.db.Executor(ctx).QueryContext(ctx, selectUsers+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return database.CollectRows(op, rows, scanUser)
}

func (s *SQLStore) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	err := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check user %q: %w", username, err)
	}
	return n > 0, nil
}

// IsPasswordCorrect is false for unknown usernames.
func (s *SQLStore) IsPasswordCorrect(ctx context.Context, username, plaintext string) (bool, error) {
	u, err := s.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return password.Matches(plaintext, u.PasswordHash)
}

func (s *SQLStore) Delete(ctx context.Context, userID id.UserID) (*models.User, error) {
	var deleted *models.User
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		u, err := s.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		op := fmt.Sprintf("delete user %s", userID)
		res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), int64(userID))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := database.ExpectAffected(op, res); err != nil {
			return err
		}
		deleted = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func scanUser(row database.Scanner) (*models.User, error) {
	var (
		u   models.User
		uid int64
	)
	if err := row.Scan(&uid, &u.Username, &u.PasswordHash); err != nil {
		return nil, err
	}
	u.ID = id.UserID(uid)
	return &u, nil
}
