package parish

import (
	"context"
	"strings"

	"sgip/internal/authz"
	"sgip/internal/domain"
	"sgip/internal/platform/secrets"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// DefaultAdminSecret is the provisioning secret of the first admin
// account. The account carries MustChangeSecret, so it only works until
// the first real login completes a secret change.
const DefaultAdminSecret = "admin_password_change_me"

// ErrAuthentication is the single failure signal for every credential
// mismatch: unknown user, wrong secret, and inactive account are
// indistinguishable to the caller.
var ErrAuthentication = dErrors.New(dErrors.CodeUnauthorized, "identifiants invalides")

// InitializeParish writes the settings record and replaces the user
// collection with a single admin account. It is callable exactly once;
// a second call is rejected rather than overwriting an existing parish.
func (s *Service) InitializeParish(ctx context.Context, settings domain.ParishSettings, admin domain.User) (domain.User, error) {
	if strings.TrimSpace(settings.Name) == "" || strings.TrimSpace(settings.Diocese) == "" {
		return domain.User{}, dErrors.New(dErrors.CodeInvalidInput, "parish name and diocese are required")
	}
	if strings.TrimSpace(admin.Username) == "" {
		return domain.User{}, dErrors.New(dErrors.CodeInvalidInput, "admin username is required")
	}

	hashed, err := secrets.Hash(DefaultAdminSecret)
	if err != nil {
		return domain.User{}, err
	}

	admin.Role = authz.RoleAdmin
	admin.IsActive = true
	admin.Secret = hashed
	admin.MustChangeSecret = true
	admin.ParishName = settings.Name

	err = s.mutate(ctx, func(snap *store.Snapshot) error {
		if snap.Settings != nil {
			return dErrors.New(dErrors.CodeConflict, "parish is already initialized")
		}
		copied := settings
		snap.Settings = &copied
		snap.Users = []domain.User{admin}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("parish initialized", "parish", settings.Name, "admin", admin.Username)
	return admin.Redacted(), nil
}

// AuthenticateStaff checks a staff credential pair against the user
// collection. The returned user has the secret stripped but keeps the
// MustChangeSecret flag so the session layer can gate on it.
func (s *Service) AuthenticateStaff(ctx context.Context, username, secret string) (domain.User, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Username != username {
			continue
		}
		if err := secrets.Verify(secret, u.Secret); err != nil {
			break
		}
		if !u.IsActive {
			break
		}
		return u.Redacted(), nil
	}
	s.metrics.IncrementAuthFailures()
	return domain.User{}, ErrAuthentication
}

// AuthenticateMember checks a member-number + phone pair. Only members
// with status ACTIF may log in. Failure is the same signal as for staff.
func (s *Service) AuthenticateMember(ctx context.Context, memberID, phone string) (domain.Parishioner, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Parishioners {
		if p.ID == memberID && p.Phone == phone && p.Status == domain.MemberActive {
			return p, nil
		}
	}
	s.metrics.IncrementAuthFailures()
	return domain.Parishioner{}, ErrAuthentication
}

// ChangeSecret rotates a user's secret after verifying the current one,
// clearing the must-change flag. Used to complete first logins.
func (s *Service) ChangeSecret(ctx context.Context, username, current, next string) error {
	if len(next) < 8 {
		return dErrors.New(dErrors.CodeInvalidInput, "new secret must be at least 8 characters")
	}
	hashed, err := secrets.Hash(next)
	if err != nil {
		return err
	}

	return s.mutate(ctx, func(snap *store.Snapshot) error {
		users := append([]domain.User(nil), snap.Users...)
		for i, u := range users {
			if u.Username != username {
				continue
			}
			if err := secrets.Verify(current, u.Secret); err != nil {
				return ErrAuthentication
			}
			u.Secret = hashed
			u.MustChangeSecret = false
			users[i] = u
			snap.Users = users
			return nil
		}
		return ErrAuthentication
	})
}
