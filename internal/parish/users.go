package parish

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sgip/internal/authz"
	"sgip/internal/domain"
	"sgip/internal/platform/secrets"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// UserInput carries the caller-supplied fields of a new staff account.
type UserInput struct {
	Username string
	Secret   string
	Email    string
	Role     authz.Role
	FullName string
	IsActive bool
}

// AddUser creates a staff account. Usernames are unique; the secret is
// hashed before it reaches the store.
func (s *Service) AddUser(ctx context.Context, actor domain.User, in UserInput) (domain.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return domain.User{}, dErrors.New(dErrors.CodeInvalidInput, "username is required")
	}
	if !in.Role.Valid() {
		return domain.User{}, dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
	if len(in.Secret) < 8 {
		return domain.User{}, dErrors.New(dErrors.CodeInvalidInput, "secret must be at least 8 characters")
	}
	hashed, err := secrets.Hash(in.Secret)
	if err != nil {
		return domain.User{}, err
	}

	parishName := ""
	if settings, ok := s.Settings(); ok {
		parishName = settings.Name
	}

	created := domain.User{
		ID:         uuid.NewString(),
		Username:   in.Username,
		Secret:     hashed,
		Email:      in.Email,
		Role:       in.Role,
		FullName:   in.FullName,
		ParishName: parishName,
		IsActive:   in.IsActive,
	}

	err = s.mutate(ctx, func(snap *store.Snapshot) error {
		for _, u := range snap.Users {
			if u.Username == in.Username {
				return dErrors.New(dErrors.CodeConflict, "username is already taken")
			}
		}
		snap.Users = append(append([]domain.User(nil), snap.Users...), created)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.metrics.IncrementRecordsCreated("users")
	s.logger.Info("user created", "username", created.Username, "role", string(created.Role), "by", actor.Username)
	return created.Redacted(), nil
}

// DeleteUser removes a staff account outright; there is no soft delete.
func (s *Service) DeleteUser(ctx context.Context, actor domain.User, id string) error {
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		for i, u := range snap.Users {
			if u.ID != id {
				continue
			}
			users := make([]domain.User, 0, len(snap.Users)-1)
			users = append(users, snap.Users[:i]...)
			users = append(users, snap.Users[i+1:]...)
			snap.Users = users
			return nil
		}
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "id", id, "by", actor.Username)
	return nil
}
