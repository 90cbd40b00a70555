package parish

import (
	"context"
	"strings"

	"sgip/internal/domain"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// IntentionInput carries the caller-supplied fields of a mass intention.
type IntentionInput struct {
	RequesterName string
	Content       string
	Date          string
	Type          domain.IntentionType
	Amount        int64
	Status        domain.PaymentStatus
}

// AddIntention records a mass intention. A PAYE intention also posts the
// offering as an income transaction under the Intention category; both
// records land in one atomic write, so a persist failure leaves neither
// visible.
func (s *Service) AddIntention(ctx context.Context, actor domain.User, in IntentionInput) (domain.MassIntention, error) {
	if strings.TrimSpace(in.RequesterName) == "" {
		return domain.MassIntention{}, dErrors.New(dErrors.CodeInvalidInput, "requester name is required")
	}
	if !in.Type.Valid() {
		return domain.MassIntention{}, dErrors.New(dErrors.CodeInvalidInput, "unknown intention type")
	}
	if !in.Status.Valid() {
		return domain.MassIntention{}, dErrors.New(dErrors.CodeInvalidInput, "unknown payment status")
	}
	if in.Amount <= 0 {
		return domain.MassIntention{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}

	var created domain.MassIntention
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		now := s.clock()
		id := timestampID("INT", now, func(id string) bool {
			for _, i := range snap.Intentions {
				if i.ID == id {
					return true
				}
			}
			return false
		})
		created = domain.MassIntention{
			ID:            id,
			RequesterName: in.RequesterName,
			Content:       in.Content,
			Date:          in.Date,
			Type:          in.Type,
			Amount:        in.Amount,
			Status:        in.Status,
			RecordedAt:    now,
		}
		snap.Intentions = prepend(snap.Intentions, created)

		if in.Status == domain.PaymentPaid {
			_, err := buildTransaction(s, snap, actor, TransactionInput{
				Date:        now.Format("2006-01-02"),
				Type:        domain.TransactionIncome,
				Category:    domain.CategoryIntention,
				Amount:      in.Amount,
				Description: "Intention de Messe: " + in.RequesterName,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.MassIntention{}, err
	}

	s.metrics.IncrementRecordsCreated("intentions")
	if in.Status == domain.PaymentPaid {
		s.metrics.IncrementRecordsCreated("finances")
	}
	s.logger.Info("intention recorded", "id", created.ID, "status", string(created.Status), "by", actor.Username)
	return created, nil
}
