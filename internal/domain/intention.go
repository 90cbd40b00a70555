package domain

import "time"

// IntentionType enumerates the purposes a mass can be offered for.
type IntentionType string

const (
	IntentionThanksgiving IntentionType = "ACTION_DE_GRACE"
	IntentionDeceased     IntentionType = "DEFUNTS"
	IntentionHealth       IntentionType = "SANTE"
	IntentionOther        IntentionType = "AUTRE"
)

func (t IntentionType) Valid() bool {
	switch t {
	case IntentionThanksgiving, IntentionDeceased, IntentionHealth, IntentionOther:
		return true
	}
	return false
}

// PaymentStatus tracks whether an intention's offering has been received.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAYE"
	PaymentPending PaymentStatus = "EN_ATTENTE"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentPending
}

// MassIntention is a paid request for a mass to be offered. Creating one
// with status PAYE also posts a matching income transaction.
type MassIntention struct {
	ID            string        `json:"id"`
	RequesterName string        `json:"requesterName"`
	Content       string        `json:"content"`
	Date          string        `json:"date"`
	Type          IntentionType `json:"type"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	RecordedAt    time.Time     `json:"recordedAt"`
}
