package parish

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sgip/internal/domain"
	"sgip/internal/store"
)

// LogAudit appends a trail entry on behalf of the actor. The trail is
// append-only and newest-first; nothing ever mutates or removes entries.
func (s *Service) LogAudit(ctx context.Context, actor domain.User, action, module, details string) error {
	return s.mutate(ctx, func(snap *store.Snapshot) error {
		appendAudit(snap, s.clock(), actor, action, module, details)
		return nil
	})
}

// appendAudit prepends an entry inside an already-open mutation. Used by
// operations with a hard-wired audit side effect (sacrament key issuance)
// so the entry lands in the same atomic write.
func appendAudit(snap *store.Snapshot, now time.Time, actor domain.User, action, module, details string) {
	snap.AuditLogs = prepend(snap.AuditLogs, domain.AuditLog{
		ID:        "log-" + uuid.NewString(),
		Timestamp: now,
		UserID:    actor.ID,
		UserName:  actor.FullName,
		Action:    action,
		Module:    module,
		Details:   details,
		Origin:    "Local",
	})
}
