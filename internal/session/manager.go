// Package session drives the login state machines: the staff credential
// path, the member self-service path, and the one-time setup path. All
// three share one current-session slot, persisted through the store so a
// restart restores the session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sgip/internal/authz"
	"sgip/internal/domain"
	"sgip/internal/parish"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// State is the login flow position.
type State string

const (
	// StateSetupRequired gates everything until the parish exists.
	StateSetupRequired State = "setup_required"
	// StateIdle is the logged-out resting state.
	StateIdle State = "idle"
	// StateSecretChangeRequired blocks a staff account that still
	// carries its provisioning secret.
	StateSecretChangeRequired State = "secret_change_required"
	// StateAuthenticated holds a current session.
	StateAuthenticated State = "authenticated"
)

// ErrSecretChangeRequired is returned by LoginStaff when the account must
// rotate its provisioning secret before a session can be established.
var ErrSecretChangeRequired = dErrors.New(dErrors.CodeForbidden, "le mot de passe initial doit être changé")

type Option func(m *Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// Manager owns the current-session slot.
type Manager struct {
	parish     *parish.Service
	store      store.Store
	signingKey []byte
	logger     *slog.Logger
	clock      func() time.Time

	mu      sync.Mutex
	state   State
	current *domain.User
}

// NewManager builds a session manager over the registry and its store.
// The signing key makes persisted session records tamper-evident.
func NewManager(p *parish.Service, st store.Store, signingKey string, opts ...Option) *Manager {
	m := &Manager{
		parish:     p,
		store:      st,
		signingKey: []byte(signingKey),
		logger:     slog.Default(),
		clock:      time.Now,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start restores the persisted session, if any, and reports the initial
// state: setup when the parish does not exist yet, authenticated when a
// valid session record survives, idle otherwise.
func (m *Manager) Start(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.parish.IsInitialized() {
		m.state = StateSetupRequired
		return m.state, nil
	}

	saved, ok, err := m.store.LoadSession(ctx)
	if err != nil {
		return StateIdle, dErrors.Wrap(err, dErrors.CodeInternal, "failed to restore session")
	}
	if ok {
		if err := m.verifyToken(saved.Token); err != nil {
			m.logger.Warn("discarding saved session", "reason", err)
			_ = m.store.DeleteSession(ctx)
		} else {
			m.current = &saved
			m.state = StateAuthenticated
			return m.state, nil
		}
	}
	m.state = StateIdle
	return m.state, nil
}

// State returns the current flow position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active session view, if any.
func (m *Manager) Current() (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.User{}, false
	}
	return *m.current, true
}

// Setup collects the parish settings, creates the first admin, and moves
// the flow to the staff login. The admin account keeps its provisioning
// secret but cannot establish a session until it is changed.
func (m *Manager) Setup(ctx context.Context, settings domain.ParishSettings) (domain.User, error) {
	admin := domain.User{
		ID:       "admin-01",
		Username: "admin",
		FullName: "Administrateur",
		Email:    settings.Email,
		Role:     authz.RoleAdmin,
		IsActive: true,
	}
	created, err := m.parish.InitializeParish(ctx, settings, admin)
	if err != nil {
		return domain.User{}, err
	}

	m.mu.Lock()
	m.state = StateIdle
	m.mu.Unlock()

	m.logger.Info("setup complete; admin must change the provisioning secret on first login")
	return created, nil
}

// LoginStaff runs the staff credential path. On success the session view
// is persisted and becomes current.
func (m *Manager) LoginStaff(ctx context.Context, username, secret string) (domain.User, error) {
	user, err := m.parish.AuthenticateStaff(ctx, username, secret)
	if err != nil {
		m.fail()
		return domain.User{}, err
	}
	if user.MustChangeSecret {
		m.mu.Lock()
		m.state = StateSecretChangeRequired
		m.mu.Unlock()
		return domain.User{}, ErrSecretChangeRequired
	}
	if err := m.establish(ctx, user); err != nil {
		return domain.User{}, err
	}
	_ = m.parish.LogAudit(ctx, user, domain.AuditActionLogin, "SESSION", "Connexion bureau: "+user.Username)
	return user, nil
}

// CompleteSecretChange rotates the provisioning secret and returns the
// flow to idle; the user then logs in with the new secret.
func (m *Manager) CompleteSecretChange(ctx context.Context, username, current, next string) error {
	if err := m.parish.ChangeSecret(ctx, username, current, next); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = StateIdle
	m.mu.Unlock()
	return nil
}

// LoginMember runs the member self-service path: member number + phone.
// The session view is synthesized from the parishioner record with the
// role forced to Fidèle.
func (m *Manager) LoginMember(ctx context.Context, memberID, phone string) (domain.User, error) {
	member, err := m.parish.AuthenticateMember(ctx, memberID, phone)
	if err != nil {
		m.fail()
		return domain.User{}, err
	}

	parishName := "Ma Paroisse"
	if settings, ok := m.parish.Settings(); ok {
		parishName = settings.Name
	}
	view := domain.User{
		ID:         member.ID,
		Username:   member.ID,
		FullName:   member.DisplayName(),
		Role:       authz.RoleFidel,
		Email:      member.Email,
		ParishName: parishName,
		IsActive:   true,
	}
	if err := m.establish(ctx, view); err != nil {
		return domain.User{}, err
	}
	_ = m.parish.LogAudit(ctx, view, domain.AuditActionLogin, "SESSION", "Connexion fidèle: "+member.ID)
	return view, nil
}

// Logout clears the current session and removes the persisted record.
// There is no server-side invalidation; nothing else holds the session.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.state = StateIdle
	if err := m.store.DeleteSession(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session record")
	}
	return nil
}

func (m *Manager) establish(ctx context.Context, user domain.User) error {
	token, err := m.mintToken(user)
	if err != nil {
		return err
	}
	user.Token = token

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SaveSession(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	m.current = &user
	m.state = StateAuthenticated
	return nil
}

func (m *Manager) fail() {
	m.mu.Lock()
	defer m.mu.Unlock()
	// A failed attempt returns the flow to idle; the caller surfaces the
	// error message inline.
	if m.state != StateSetupRequired {
		m.state = StateIdle
	}
}
