package parish

import (
	"context"
	"strings"

	"sgip/internal/domain"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// CEVInput carries the caller-supplied fields of a new community.
type CEVInput struct {
	Name            string
	District        string
	PresidentName   string
	PresidentPhone  string
	PresidentEmail  string
	MeetingDay      string
	FinancialTarget int64
}

// AddCEV creates a community with a CEV-<timestamp> id.
func (s *Service) AddCEV(ctx context.Context, actor domain.User, in CEVInput) (domain.CEV, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.District) == "" {
		return domain.CEV{}, dErrors.New(dErrors.CodeInvalidInput, "cev name and district are required")
	}
	if in.FinancialTarget < 0 {
		return domain.CEV{}, dErrors.New(dErrors.CodeInvalidInput, "financial target cannot be negative")
	}

	var created domain.CEV
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		id := timestampID("CEV", s.clock(), func(id string) bool {
			return findCEV(snap.CEVs, id) >= 0
		})
		created = domain.CEV{
			ID:              id,
			Name:            in.Name,
			District:        in.District,
			PresidentName:   in.PresidentName,
			PresidentPhone:  in.PresidentPhone,
			PresidentEmail:  in.PresidentEmail,
			MeetingDay:      in.MeetingDay,
			FinancialTarget: in.FinancialTarget,
		}
		snap.CEVs = append(append([]domain.CEV(nil), snap.CEVs...), created)
		return nil
	})
	if err != nil {
		return domain.CEV{}, err
	}

	s.metrics.IncrementRecordsCreated("cevs")
	s.logger.Info("cev created", "id", created.ID, "by", actor.Username)
	return created, nil
}

// DeleteCEV removes a community. Its members are reassigned to the
// default CEV, head-counts included, so no dangling references remain.
// The default CEV itself cannot be deleted.
func (s *Service) DeleteCEV(ctx context.Context, actor domain.User, id string) error {
	if id == domain.DefaultCEVID {
		return dErrors.New(dErrors.CodeInvalidInput, "the default cev cannot be deleted")
	}

	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		idx := findCEV(snap.CEVs, id)
		if idx < 0 {
			return dErrors.New(dErrors.CodeNotFound, "cev not found")
		}

		cevs := make([]domain.CEV, 0, len(snap.CEVs)-1)
		cevs = append(cevs, snap.CEVs[:idx]...)
		cevs = append(cevs, snap.CEVs[idx+1:]...)
		snap.CEVs = cevs

		reassigned := 0
		members := append([]domain.Parishioner(nil), snap.Parishioners...)
		for i, p := range members {
			if p.CEVID == id {
				p.CEVID = domain.DefaultCEVID
				members[i] = p
				reassigned++
			}
		}
		snap.Parishioners = members
		if reassigned > 0 {
			snap.CEVs = adjustMemberCount(snap.CEVs, domain.DefaultCEVID, reassigned)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("cev deleted", "id", id, "by", actor.Username)
	return nil
}

func findCEV(list []domain.CEV, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func adjustMemberCount(list []domain.CEV, id string, delta int) []domain.CEV {
	out := append([]domain.CEV(nil), list...)
	for i, c := range out {
		if c.ID == id {
			c.MemberCount += delta
			out[i] = c
			break
		}
	}
	return out
}
