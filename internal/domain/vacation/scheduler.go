package vacation

import (
	"fmt"
	"time"

	"vacations/internal/domain/employee"
)

// PlanInput carries everything one distribution pass needs. Candidates must
// already be ordered ascending by deadline; the pass preserves that order, so
// for fixed inputs the outcome is fully deterministic.
type PlanInput struct {
	Candidates      []Candidate
	Holidays        HolidaySet
	Today           time.Time
	Rules           StartRules
	Capacity        int
	KeyByYear       bool
	LongAbsenceDays int
}

// PlanPeriods performs the per-employee constrained date search. For each
// candidate it scans forward one day at a time from max(today, acquisition
// period start) up to the deadline (exclusive), taking the first admissible
// day whose (location, month) occupancy is under capacity. Candidates with an
// active long absence are excluded with a reason; zero-balance candidates and
// candidates with no feasible day are skipped silently.
//
// Occupancy counters live only for the duration of this call.
func PlanPeriods(in PlanInput) ([]Assignment, []Exclusion) {
	assignments := make([]Assignment, 0, len(in.Candidates))
	excluded := make([]Exclusion, 0)
	occupancy := make(map[string]int)
	today := employee.DateOnly(in.Today)

	for _, cand := range in.Candidates {
		emp := cand.Employee

		if activeLongAbsence(cand.Absences, today, in.LongAbsenceDays) {
			excluded = append(excluded, Exclusion{
				Registration: emp.Registration,
				Name:         emp.Name,
				Reason:       reasonLongAbsence,
			})
			continue
		}
		if emp.DayBalance <= 0 || emp.PeriodStart == nil || emp.PeriodEnd == nil || emp.Deadline == nil {
			continue
		}

		cursor := employee.DateOnly(*emp.PeriodStart)
		if cursor.Before(today) {
			cursor = today
		}
		deadline := employee.DateOnly(*emp.Deadline)

		for day := cursor; day.Before(deadline); day = day.AddDate(0, 0, 1) {
			if !in.Rules.ValidStart(day, emp.Convention, in.Holidays) {
				continue
			}
			key := occupancyKey(emp.Location, day, in.KeyByYear)
			if occupancy[key] >= in.Capacity {
				continue
			}
			occupancy[key]++
			assignments = append(assignments, Assignment{
				Registration: emp.Registration,
				Start:        day,
				End:          day.AddDate(0, 0, emp.DayBalance-1),
				Days:         emp.DayBalance,
				PeriodStart:  employee.DateOnly(*emp.PeriodStart),
				PeriodEnd:    employee.DateOnly(*emp.PeriodEnd),
			})
			break
		}
	}

	return assignments, excluded
}

// occupancyKey identifies the capacity bucket a start date falls into. The
// historical behavior keys by month name alone, which makes the cap span
// years that share a month; keying by year+month is available behind
// configuration.
func occupancyKey(location string, day time.Time, byYear bool) string {
	if byYear {
		return fmt.Sprintf("%s|%d-%02d", location, day.Year(), int(day.Month()))
	}
	return location + "|" + day.Month().String()
}
