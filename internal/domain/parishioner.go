package domain

import "time"

// MemberStatus tracks a parishioner's standing in the registry.
type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIF"
	MemberInactive MemberStatus = "INACTIF"
	MemberDeceased MemberStatus = "DECEDE"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberDeceased:
		return true
	}
	return false
}

// Parishioner is a registered member ("fidèle"). The ID doubles as the
// member number printed on cards, hence the FID-#### display format.
type Parishioner struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	BirthDate string       `json:"birthDate"`
	Gender    string       `json:"gender"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email"`
	Address   string       `json:"address"`
	CEVID     string       `json:"cevId"`
	Status    MemberStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	Baptized  bool         `json:"baptized"`
	Confirmed bool         `json:"confirmed"`
	Married   bool         `json:"married"`
}

// DisplayName is the form used on sacrament records and session views.
func (p Parishioner) DisplayName() string {
	return p.LastName + " " + p.FirstName
}
