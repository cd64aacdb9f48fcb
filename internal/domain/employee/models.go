package employee

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	Registration      string     `json:"registration"`
	Name              string     `json:"name"`
	AdmissionDate     time.Time  `json:"admissionDate"`
	Status            string     `json:"status"`
	PeriodStart       *time.Time `json:"periodStart,omitempty"`
	PeriodEnd         *time.Time `json:"periodEnd,omitempty"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	UnexcusedAbsences int        `json:"unexcusedAbsences"`
	DayBalance        int        `json:"dayBalance"`
	Location          string     `json:"location"`
	Convention        string     `json:"convention"`
	CurrentStatus     string     `json:"currentStatus,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Absence struct {
	ID                  string     `json:"id"`
	Registration        string     `json:"registration"`
	Reason              string     `json:"reason"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	CountsAgainstPeriod bool       `json:"countsAgainstPeriod"`
	CreatedAt           time.Time  `json:"createdAt"`
}
