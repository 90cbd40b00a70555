// Package memory provides an in-memory store for tests and ephemeral
// runs. It favors clarity over performance.
package memory

import (
	"context"
	"sync"

	"sgip/internal/domain"
	"sgip/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	snap    store.Snapshot
	session *domain.User
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap), nil
}

func (s *Store) SaveAll(_ context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = copySnapshot(snap)
	return nil
}

func (s *Store) SaveSession(_ context.Context, session domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *Store) LoadSession(_ context.Context) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.User{}, false, nil
	}
	return *s.session, true, nil
}

func (s *Store) DeleteSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *Store) Close() error { return nil }

func copySnapshot(in store.Snapshot) store.Snapshot {
	out := store.Snapshot{
		Parishioners: append([]domain.Parishioner(nil), in.Parishioners...),
		Transactions: append([]domain.FinanceTransaction(nil), in.Transactions...),
		Sacraments:   append([]domain.SacramentRecord(nil), in.Sacraments...),
		CEVs:         append([]domain.CEV(nil), in.CEVs...),
		Users:        append([]domain.User(nil), in.Users...),
		AuditLogs:    append([]domain.AuditLog(nil), in.AuditLogs...),
		Intentions:   append([]domain.MassIntention(nil), in.Intentions...),
		Projects:     append([]domain.ParishProject(nil), in.Projects...),
	}
	if in.Settings != nil {
		settings := *in.Settings
		out.Settings = &settings
	}
	return out
}
