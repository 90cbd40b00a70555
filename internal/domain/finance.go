package domain

// TransactionType splits the ledger into income and expense lines.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Entrée"
	TransactionExpense TransactionType = "Sortie"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// TransactionCategory is the closed set of parish income/expense kinds.
type TransactionCategory string

const (
	CategoryCollection  TransactionCategory = "Quête Dominicale"
	CategoryTithe       TransactionCategory = "Denier du Culte (Dîme)"
	CategoryIntention   TransactionCategory = "Intention de Messe"
	CategoryFundraising TransactionCategory = "Récolte de Fonds / Kermesse"
	CategoryProject     TransactionCategory = "Projet de Construction"
	CategoryMaintenance TransactionCategory = "Entretien / Travaux"
	CategoryCharity     TransactionCategory = "Caritas / Social"
	CategoryOther       TransactionCategory = "Autre"
)

func (c TransactionCategory) Valid() bool {
	switch c {
	case CategoryCollection, CategoryTithe, CategoryIntention, CategoryFundraising,
		CategoryProject, CategoryMaintenance, CategoryCharity, CategoryOther:
		return true
	}
	return false
}

// FinanceTransaction is one insert-only ledger line. Amounts are whole
// FCFA and always positive; the type carries the sign. The ledger balance
// is derived, never stored.
type FinanceTransaction struct {
	ID           string              `json:"id"`
	Date         string              `json:"date"`
	Type         TransactionType     `json:"type"`
	Category     TransactionCategory `json:"category"`
	Amount       int64               `json:"amount"`
	Description  string              `json:"description"`
	RecordedBy   string              `json:"recordedBy"`
	CEVReference string              `json:"cevReference,omitempty"`
	ProjectID    string              `json:"projectId,omitempty"`
}

// Signed returns the amount with the sign implied by the type.
func (t FinanceTransaction) Signed() int64 {
	if t.Type == TransactionExpense {
		return -t.Amount
	}
	return t.Amount
}
