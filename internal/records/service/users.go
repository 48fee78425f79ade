package service

import (
	"context"
	"errors"

	"nhplus/internal/auth/password"
	"nhplus/internal/records/models"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/platform/sentinel"
)

// CreateUser hashes the password and stores the account. Usernames are
// unique.
func (s *Service) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	hash, err := password.HashWithCost(in.Password, s.hashCost)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "hash password")
	}
	u, err := s.users.Create(ctx, models.UserCreation{Username: in.Username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "username %q is already taken", in.Username)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeCreateFailed, "create user")
	}
	s.logAudit(ctx, audit.EventUserCreated, "username", u.Username, "id", int64(u.ID))
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	out, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list users")
	}
	return out, nil
}
