package domain

// SacramentType enumerates the celebrations tracked in the register.
type SacramentType string

const (
	SacramentBaptism      SacramentType = "Baptême"
	SacramentConfirmation SacramentType = "Confirmation"
	SacramentMarriage     SacramentType = "Mariage"
	SacramentFuneral      SacramentType = "Obsèques"
)

func (t SacramentType) Valid() bool {
	switch t {
	case SacramentBaptism, SacramentConfirmation, SacramentMarriage, SacramentFuneral:
		return true
	}
	return false
}

// SacramentRecord is the archival register entry for a celebration.
// Immutable once written. VerificationKey is the anti-fraud token issued
// at creation; its issuance is always audited.
type SacramentRecord struct {
	ID              string        `json:"id"`
	Type            SacramentType `json:"type"`
	ParishionerID   string        `json:"parishionerId"`
	ParishionerName string        `json:"parishionerName"`
	Date            string        `json:"date"`
	Minister        string        `json:"minister"`
	GodFather       string        `json:"godFather,omitempty"`
	GodMother       string        `json:"godMother,omitempty"`
	RegisterVolume  string        `json:"registerVolume"`
	RegisterPage    string        `json:"registerPage"`
	RegisterNumber  string        `json:"registerNumber"`
	VerificationKey string        `json:"verificationKey"`
}
