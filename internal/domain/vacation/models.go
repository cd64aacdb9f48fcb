package vacation

import (
	"time"

	"vacations/internal/domain/employee"
)

const (
	PlanActive   = "active"
	PlanArchived = "archived"
)

const (
	StatusRequested = "requested"
	StatusPlanned   = "planned"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Plan struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Period struct {
	ID               string    `json:"id"`
	Registration     string    `json:"registration"`
	EmployeeName     string    `json:"employeeName,omitempty"`
	PlanID           string    `json:"planId"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Days             int       `json:"days"`
	Status           string    `json:"status"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	ManualAdjustment bool      `json:"manualAdjustment"`
	NeedsReplacement bool      `json:"needsReplacement"`
	SubstituteID     *string   `json:"substituteId,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Candidate pairs an eligible employee with its absence history for the
// in-pass exclusion checks.
type Candidate struct {
	Employee employee.Employee
	Absences []employee.Absence
}

// Assignment is one planned period produced by a distribution run, before
// persistence.
type Assignment struct {
	Registration string
	Start        time.Time
	End          time.Time
	Days         int
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

type Exclusion struct {
	Registration string `json:"registration"`
	Name         string `json:"name"`
	Reason       string `json:"reason"`
}

type DistributionResult struct {
	PlanID         string      `json:"planId"`
	Year           int         `json:"year"`
	PeriodsCreated int         `json:"periodsCreated"`
	Excluded       []Exclusion `json:"excluded"`
}

type ReconcileResult struct {
	CancelledCount int      `json:"cancelledCount"`
	CancelledIDs   []string `json:"cancelledIds"`
}

// PeriodConflictView is an upcoming period joined with the employee's
// absence history, as the reconciler consumes it.
type PeriodConflictView struct {
	Period   Period
	Absences []employee.Absence
}
