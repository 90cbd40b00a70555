package domain

// DefaultCEVID is the seed community every parish starts with. It cannot
// be deleted; members of a deleted CEV are reassigned to it.
const DefaultCEVID = "cev-default"

// CEV is a base ecclesial community, the parish's smallest organizational
// unit with its own leadership and meeting cadence.
type CEV struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	District        string `json:"district"`
	PresidentName   string `json:"presidentName"`
	PresidentPhone  string `json:"presidentPhone"`
	PresidentEmail  string `json:"presidentEmail"`
	MeetingDay      string `json:"meetingDay"`
	MemberCount     int    `json:"memberCount"`
	FinancialTarget int64  `json:"financialTarget"`
}

// DefaultCEV returns the seed community record.
func DefaultCEV() CEV {
	return CEV{
		ID:              DefaultCEVID,
		Name:            "Communauté Saint-Esprit",
		District:        "Centre",
		PresidentName:   "M. Le Curé",
		PresidentPhone:  "600000000",
		PresidentEmail:  "admin@paroisse.cm",
		MeetingDay:      "Dimanche",
		FinancialTarget: 100000,
	}
}
