package domain

import "time"

// Conventional audit action tags. The field is free-form; these cover the
// actions the service itself emits.
const (
	AuditActionLogin    = "CONNEXION"
	AuditActionRecorded = "ENREGISTREMENT"
	AuditActionDeleted  = "SUPPRESSION"
)

// AuditLog is one append-only trail entry. Entries are never mutated or
// deleted; listings are newest-first.
type AuditLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Details   string    `json:"details"`
	Origin    string    `json:"ipAddress"`
}
