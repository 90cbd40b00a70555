package domain

// ProjectStatus tracks a construction project's lifecycle.
type ProjectStatus string

const (
	ProjectOngoing  ProjectStatus = "EN_COURS"
	ProjectFinished ProjectStatus = "TERMINE"
	ProjectPaused   ProjectStatus = "PAUSE"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOngoing, ProjectFinished, ProjectPaused:
		return true
	}
	return false
}

// ParishProject is a fundraising effort. CurrentAmount is adjusted
// incrementally as tagged transactions are recorded and always equals the
// signed sum of those transactions.
type ParishProject struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	TargetAmount  int64         `json:"targetAmount"`
	CurrentAmount int64         `json:"currentAmount"`
	StartDate     string        `json:"startDate"`
	Status        ProjectStatus `json:"status"`
}
