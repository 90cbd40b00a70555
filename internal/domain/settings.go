package domain

// ParishSettings is the singleton identity record. Its existence marks
// the system as initialized; it is written once and read-only thereafter.
type ParishSettings struct {
	Name     string `json:"name"`
	Diocese  string `json:"diocese"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	CureName string `json:"cureName"`
	LogoURL  string `json:"logoUrl,omitempty"`
}
