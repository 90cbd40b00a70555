package parish

import (
	"context"

	"sgip/internal/domain"
	"sgip/internal/store"
	dErrors "sgip/pkg/domain-errors"
)

// TransactionInput carries the caller-supplied fields of a ledger line.
type TransactionInput struct {
	Date         string
	Type         domain.TransactionType
	Category     domain.TransactionCategory
	Amount       int64
	Description  string
	CEVReference string
	ProjectID    string
}

// AddTransaction records a ledger line. A line tagged with a known
// project adjusts that project's running total by the signed amount; a
// tag that resolves to nothing leaves projects untouched but the line is
// still recorded. A CEV reference, when present, must resolve.
func (s *Service) AddTransaction(ctx context.Context, actor domain.User, in TransactionInput) (domain.FinanceTransaction, error) {
	created, err := s.addTransaction(ctx, actor, in)
	if err != nil {
		return domain.FinanceTransaction{}, err
	}
	s.metrics.IncrementRecordsCreated("finances")
	s.logger.Info("transaction recorded", "id", created.ID, "type", string(created.Type), "amount", created.Amount, "by", actor.Username)
	return created, nil
}

func (s *Service) addTransaction(ctx context.Context, actor domain.User, in TransactionInput) (domain.FinanceTransaction, error) {
	if err := validateTransaction(in); err != nil {
		return domain.FinanceTransaction{}, err
	}

	var created domain.FinanceTransaction
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		tx, err := buildTransaction(s, snap, actor, in)
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return domain.FinanceTransaction{}, err
	}
	return created, nil
}

func validateTransaction(in TransactionInput) error {
	if in.Amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}
	if !in.Type.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown transaction type")
	}
	if !in.Category.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown transaction category")
	}
	return nil
}

// buildTransaction inserts the ledger line into the snapshot and applies
// the project adjustment. Factored out so intention recording can post
// its payment inside the same atomic mutation.
func buildTransaction(s *Service, snap *store.Snapshot, actor domain.User, in TransactionInput) (domain.FinanceTransaction, error) {
	if in.CEVReference != "" && findCEV(snap.CEVs, in.CEVReference) < 0 {
		return domain.FinanceTransaction{}, dErrors.New(dErrors.CodeInvalidInput, "cev reference does not exist")
	}

	id, err := transactionID(s.clock())
	if err != nil {
		return domain.FinanceTransaction{}, err
	}
	tx := domain.FinanceTransaction{
		ID:           id,
		Date:         in.Date,
		Type:         in.Type,
		Category:     in.Category,
		Amount:       in.Amount,
		Description:  in.Description,
		RecordedBy:   actor.FullName,
		CEVReference: in.CEVReference,
		ProjectID:    in.ProjectID,
	}
	snap.Transactions = prepend(snap.Transactions, tx)

	if in.ProjectID != "" {
		projects := append([]domain.ParishProject(nil), snap.Projects...)
		for i, p := range projects {
			if p.ID == in.ProjectID {
				p.CurrentAmount += tx.Signed()
				projects[i] = p
				snap.Projects = projects
				break
			}
		}
	}
	return tx, nil
}

// ProjectInput carries the caller-supplied fields of a new project.
type ProjectInput struct {
	Title        string
	Description  string
	TargetAmount int64
	StartDate    string
	Status       domain.ProjectStatus
}

// AddProject opens a construction project with a zero running total.
func (s *Service) AddProject(ctx context.Context, actor domain.User, in ProjectInput) (domain.ParishProject, error) {
	if in.Title == "" {
		return domain.ParishProject{}, dErrors.New(dErrors.CodeInvalidInput, "project title is required")
	}
	if in.TargetAmount <= 0 {
		return domain.ParishProject{}, dErrors.New(dErrors.CodeInvalidInput, "target amount must be positive")
	}
	status := in.Status
	if status == "" {
		status = domain.ProjectOngoing
	}
	if !status.Valid() {
		return domain.ParishProject{}, dErrors.New(dErrors.CodeInvalidInput, "unknown project status")
	}

	var created domain.ParishProject
	err := s.mutate(ctx, func(snap *store.Snapshot) error {
		id := timestampID("PROJ", s.clock(), func(id string) bool {
			for _, p := range snap.Projects {
				if p.ID == id {
					return true
				}
			}
			return false
		})
		created = domain.ParishProject{
			ID:           id,
			Title:        in.Title,
			Description:  in.Description,
			TargetAmount: in.TargetAmount,
			StartDate:    in.StartDate,
			Status:       status,
		}
		snap.Projects = append(append([]domain.ParishProject(nil), snap.Projects...), created)
		return nil
	})
	if err != nil {
		return domain.ParishProject{}, err
	}

	s.metrics.IncrementRecordsCreated("projects")
	s.logger.Info("project opened", "id", created.ID, "title", created.Title, "by", actor.Username)
	return created, nil
}

// Balance derives the ledger balance: income minus expenses, order
// independent, never stored.
func (s *Service) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var balance int64
	for _, tx := range s.state.Transactions {
		balance += tx.Signed()
	}
	return balance
}
