// Package parish implements the registry service: the single writer that
// owns every entity collection, mirrors state to the store after each
// mutation, derives identifiers, enforces cross-entity side effects, and
// appends the audit trail.
package parish

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sgip/internal/domain"
	"sgip/internal/platform/metrics"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// Service is the registry. All mutations serialize on one mutex: mutate
// in memory, persist the full snapshot, and roll the memory image back if
// the persist fails, so composite writes are all-or-nothing.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time

	state store.Snapshot
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New loads the registry from the store. An empty CEV collection is
// seeded with the default community and persisted immediately, so every
// parish always has at least one CEV to assign members to.
func New(ctx context.Context, st store.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:  st,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := st.Load(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registry state")
	}
	s.state = snap

	if len(s.state.CEVs) == 0 {
		s.state.CEVs = []domain.CEV{domain.DefaultCEV()}
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close flushes the current state and releases the store.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx); err != nil {
		return err
	}
	return s.store.Close()
}

// mutate runs fn against the in-memory state and persists the result.
// fn must replace collections rather than edit elements in place; on any
// failure the previous state is restored, so callers never observe a
// half-applied composite write.
func (s *Service) mutate(ctx context.Context, fn func(snap *store.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	if err := fn(&s.state); err != nil {
		s.state = prev
		return err
	}
	if err := s.persist(ctx); err != nil {
		s.state = prev
		return err
	}
	return nil
}

func (s *Service) persist(ctx context.Context) error {
	start := s.clock()
	if err := s.store.SaveAll(ctx, s.state); err != nil {
		s.logger.Error("persist failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist registry state")
	}
	s.metrics.ObservePersist(start)
	return nil
}

// IsInitialized reports whether the parish settings record exists.
func (s *Service) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings != nil
}

// Settings returns the parish settings, or false when uninitialized.
func (s *Service) Settings() (domain.ParishSettings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Settings == nil {
		return domain.ParishSettings{}, false
	}
	return *s.state.Settings, true
}

// Read accessors. Each returns a copy; callers never share slices with
// the registry.

func (s *Service) Parishioners() []domain.Parishioner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Parishioner(nil), s.state.Parishioners...)
}

func (s *Service) Transactions() []domain.FinanceTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FinanceTransaction(nil), s.state.Transactions...)
}

func (s *Service) Sacraments() []domain.SacramentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SacramentRecord(nil), s.state.Sacraments...)
}

func (s *Service) CEVs() []domain.CEV {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CEV(nil), s.state.CEVs...)
}

func (s *Service) Intentions() []domain.MassIntention {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MassIntention(nil), s.state.Intentions...)
}

func (s *Service) Projects() []domain.ParishProject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ParishProject(nil), s.state.Projects...)
}

func (s *Service) AuditLogs() []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditLog(nil), s.state.AuditLogs...)
}

// Users returns all staff accounts with secrets stripped.
func (s *Service) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		users = append(users, u.Redacted())
	}
	return users
}
