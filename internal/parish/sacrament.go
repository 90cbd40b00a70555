package parish

import (
	"context"
	"fmt"
	"strings"

	"sgip/internal/domain"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// SacramentInput carries the caller-supplied fields of a register entry.
type SacramentInput struct {
	Type           domain.SacramentType
	ParishionerID  string
	Date           string
	Minister       string
	GodFather      string
	GodMother      string
	RegisterVolume string
	RegisterPage   string
	RegisterNumber string
}

// AddSacrament writes a register entry, issues its verification key, and
// appends the mandatory audit entry for the key issuance — all in one
// atomic write. Recording a baptism, confirmation, or marriage also sets
// the member's matching sacrament flag.
func (s *Service) AddSacrament(ctx context.Context, actor domain.User, in SacramentInput) (domain.SacramentRecord, error) {
	if !in.Type.Valid() {
		return domain.SacramentRecord{}, dErrors.New(dErrors.CodeInvalidInput, "unknown sacrament type")
	}
	if strings.TrimSpace(in.Minister) == "" {
		return domain.SacramentRecord{}, dErrors.New(dErrors.CodeInvalidInput, "minister is required")
	}

	var created domain.SacramentRecord
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		idx := findParishioner(snap.Parishioners, in.ParishionerID)
		if idx < 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "parishioner does not exist")
		}
		member := snap.Parishioners[idx]

		now := s.clock()
		id := timestampID("SAC", now, func(id string) bool {
			return findSacrament(snap.Sacraments, id) >= 0
		})
		key, err := newVerificationKey(func(key string) bool {
			for _, rec := range snap.Sacraments {
				if rec.VerificationKey == key {
					return true
				}
			}
			return false
		})
		if err != nil {
			return err
		}

		created = domain.SacramentRecord{
			ID:              id,
			Type:            in.Type,
			ParishionerID:   member.ID,
			ParishionerName: member.DisplayName(),
			Date:            in.Date,
			Minister:        in.Minister,
			GodFather:       in.GodFather,
			GodMother:       in.GodMother,
			RegisterVolume:  in.RegisterVolume,
			RegisterPage:    in.RegisterPage,
			RegisterNumber:  in.RegisterNumber,
			VerificationKey: key,
		}
		snap.Sacraments = prepend(snap.Sacraments, created)

		if flagged, changed := applySacramentFlag(member, in.Type); changed {
			members := append([]domain.Parishioner(nil), snap.Parishioners...)
			members[idx] = flagged
			snap.Parishioners = members
		}

		appendAudit(snap, now, actor, domain.AuditActionRecorded, "SACREMENT",
			fmt.Sprintf("Clé générée pour %s: %s", created.ParishionerName, key))
		return nil
	})
	if err != nil {
		return domain.SacramentRecord{}, err
	}

	s.metrics.IncrementRecordsCreated("sacraments")
	s.logger.Info("sacrament recorded", "id", created.ID, "type", string(created.Type), "by", actor.Username)
	return created, nil
}

func applySacramentFlag(p domain.Parishioner, t domain.SacramentType) (domain.Parishioner, bool) {
	switch t {
	case domain.SacramentBaptism:
		if !p.Baptized {
			p.Baptized = true
			return p, true
		}
	case domain.SacramentConfirmation:
		if !p.Confirmed {
			p.Confirmed = true
			return p, true
		}
	case domain.SacramentMarriage:
		if !p.Married {
			p.Married = true
			return p, true
		}
	}
	return p, false
}

func findSacrament(list []domain.SacramentRecord, id string) int {
	for i, rec := range list {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
