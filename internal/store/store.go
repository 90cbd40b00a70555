// Package store defines the persistence contract for the parish registry:
// one durable bucket per entity collection plus settings, mirrored in full
// after every mutation, and a separate bucket for the current session
// record. Implementations are passive; all logic lives in the service.
package store

import (
	"context"

	"sgip/internal/domain"
)

// Bucket names, one per entity collection. Stable: they are the on-disk
// key layout.
const (
	BucketParishioners = "parishioners"
	BucketFinances     = "finances"
	BucketSacraments   = "sacraments"
	BucketCEVs         = "cevs"
	BucketUsers        = "users"
	BucketAudit        = "audit"
	BucketIntentions   = "intentions"
	BucketProjects     = "projects"
	BucketSettings     = "settings"
	BucketSession      = "session"
)

// Snapshot is the full registry state. A missing bucket loads as a nil
// collection, never as an error. Settings is nil until the parish has
// been initialized.
type Snapshot struct {
	Parishioners []domain.Parishioner
	Transactions []domain.FinanceTransaction
	Sacraments   []domain.SacramentRecord
	CEVs         []domain.CEV
	Users        []domain.User
	AuditLogs    []domain.AuditLog
	Intentions   []domain.MassIntention
	Projects     []domain.ParishProject
	Settings     *domain.ParishSettings
}

// Store is the durable mirror behind the registry service. The service is
// the store's only caller and serializes writes; implementations only
// need to make each call atomic, not coordinate concurrent writers.
type Store interface {
	// Load returns the last saved snapshot. A fresh store returns an
	// empty snapshot and no error.
	Load(ctx context.Context) (Snapshot, error)
	// SaveAll replaces every collection bucket with the snapshot's
	// contents. It must not return before the state is durable.
	SaveAll(ctx context.Context, snap Snapshot) error

	// Session record accessors. The session lives under its own bucket
	// and is read once at startup to restore the current session.
	SaveSession(ctx context.Context, session domain.User) error
	LoadSession(ctx context.Context) (domain.User, bool, error)
	DeleteSession(ctx context.Context) error

	Close() error
}
