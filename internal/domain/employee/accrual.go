package employee

import (
	"context"
	"sort"
	"time"
)

// illnessResetThreshold is the number of illness/accident days inside one
// acquisition period after which the period restarts.
const illnessResetThreshold = 180

type Accrual struct {
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Deadline          time.Time
	DayBalance        int
	UnexcusedAbsences int
	Reset             bool
}

type AccrualStore interface {
	GetByRegistration(ctx context.Context, registration string) (Employee, error)
	ListAbsences(ctx context.Context, registration string) ([]Absence, error)
	UpdateAccrual(ctx context.Context, registration string, accrual Accrual) error
}

// Recompute reloads an employee, derives the acquisition period, deadline and
// day balance from the admission date and absence history, and persists the
// result.
func Recompute(ctx context.Context, store AccrualStore, registration string, now time.Time) (Employee, error) {
	emp, err := store.GetByRegistration(ctx, registration)
	if err != nil {
		return Employee{}, err
	}

	absences, err := store.ListAbsences(ctx, registration)
	if err != nil {
		return Employee{}, err
	}

	accrual := ComputeAccrual(emp.AdmissionDate, emp.UnexcusedAbsences, absences, now)
	if err := store.UpdateAccrual(ctx, registration, accrual); err != nil {
		return Employee{}, err
	}

	emp.PeriodStart = &accrual.PeriodStart
	emp.PeriodEnd = &accrual.PeriodEnd
	emp.Deadline = &accrual.Deadline
	emp.DayBalance = accrual.DayBalance
	emp.UnexcusedAbsences = accrual.UnexcusedAbsences
	return emp, nil
}

// ComputeAccrual derives the acquisition period from the most recent service
// anniversary, then walks the flagged absence history: illness/accident days
// past the 180-day threshold reset the period (first reset wins), unpaid
// leave starting inside the default window pushes the period end out.
func ComputeAccrual(admission time.Time, unexcusedAbsences int, absences []Absence, now time.Time) Accrual {
	admission = DateOnly(admission)
	now = DateOnly(now)

	elapsedDays := int(now.Sub(admission).Hours() / 24)
	years := int(float64(elapsedDays) / 365.25)
	start := admission.AddDate(years, 0, 0)
	if start.After(now) {
		start = start.AddDate(-1, 0, 0)
	}
	end := start.AddDate(1, 0, 0).AddDate(0, 0, -1)
	defaultStart, defaultEnd := start, end

	counted := make([]Absence, 0, len(absences))
	for _, a := range absences {
		if a.CountsAgainstPeriod {
			counted = append(counted, a)
		}
	}
	sort.SliceStable(counted, func(i, j int) bool {
		return counted[i].StartDate.Before(counted[j].StartDate)
	})

	counter := unexcusedAbsences
	reset := false
	illnessDays := 0
	extensionDays := 0

	for _, a := range counted {
		switch Categorize(a.Reason) {
		case CategoryIllness:
			illnessDays += overlapDays(a, defaultStart, defaultEnd)
			if illnessDays > illnessResetThreshold {
				resetFrom := defaultEnd
				if a.EndDate != nil {
					resetFrom = DateOnly(*a.EndDate)
				}
				start = resetFrom.AddDate(0, 0, 1)
				end = start.AddDate(1, 0, 0).AddDate(0, 0, -1)
				counter = 0
				reset = true
			}
		case CategoryUnpaidLeave:
			absStart := DateOnly(a.StartDate)
			if a.EndDate != nil && !absStart.Before(defaultStart) && !absStart.After(defaultEnd) {
				extensionDays += AbsenceDays(a, defaultEnd)
			}
		}
		if reset {
			// Later absences belong to the new period and are not considered.
			break
		}
	}

	if !reset {
		start = defaultStart
		end = defaultEnd.AddDate(0, 0, extensionDays)
	}

	return Accrual{
		PeriodStart:       start,
		PeriodEnd:         end,
		Deadline:          Deadline(end),
		DayBalance:        DayBalance(counter),
		UnexcusedAbsences: counter,
		Reset:             reset,
	}
}
