package parish

import (
	"context"
	"strings"

	"sgip/internal/domain"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// ParishionerInput carries the caller-supplied fields of a new member.
type ParishionerInput struct {
	FirstName string
	LastName  string
	BirthDate string
	Gender    string
	Phone     string
	Email     string
	Address   string
	CEVID     string
	Status    domain.MemberStatus
	Baptized  bool
	Confirmed bool
	Married   bool
}

// AddParishioner registers a member under a fresh FID-#### number. An
// empty CEVID means unassigned; a non-empty one must resolve and has its
// community's head-count bumped in the same write.
func (s *Service) AddParishioner(ctx context.Context, actor domain.User, in ParishionerInput) (domain.Parishioner, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return domain.Parishioner{}, dErrors.New(dErrors.CodeInvalidInput, "first and last name are required")
	}
	if in.Gender != "M" && in.Gender != "F" {
		return domain.Parishioner{}, dErrors.New(dErrors.CodeInvalidInput, "gender must be M or F")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return domain.Parishioner{}, dErrors.New(dErrors.CodeInvalidInput, "phone is required")
	}
	status := in.Status
	if status == "" {
		status = domain.MemberActive
	}
	if !status.Valid() {
		return domain.Parishioner{}, dErrors.New(dErrors.CodeInvalidInput, "unknown member status")
	}

	var created domain.Parishioner
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		if in.CEVID != "" && findCEV(snap.CEVs, in.CEVID) < 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "cev does not exist")
		}
		id, err := newMemberID(func(id string) bool {
			return findParishioner(snap.Parishioners, id) >= 0
		})
		if err != nil {
			return err
		}
		created = domain.Parishioner{
			ID:        id,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			BirthDate: in.BirthDate,
			Gender:    in.Gender,
			Phone:     in.Phone,
			Email:     in.Email,
			Address:   in.Address,
			CEVID:     in.CEVID,
			Status:    status,
			CreatedAt: s.clock(),
			Baptized:  in.Baptized,
			Confirmed: in.Confirmed,
			Married:   in.Married,
		}
		snap.Parishioners = prepend(snap.Parishioners, created)
		if in.CEVID != "" {
			snap.CEVs = adjustMemberCount(snap.CEVs, in.CEVID, 1)
		}
		return nil
	})
	if err != nil {
		return domain.Parishioner{}, err
	}

	s.metrics.IncrementRecordsCreated("parishioners")
	s.logger.Info("parishioner registered", "id", created.ID, "by", actor.Username)
	return created, nil
}

func findParishioner(list []domain.Parishioner, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}
