package vacation

import (
	"time"

	"vacations/internal/domain/employee"
)

// farFuture stands in for the end of an open-ended absence when measuring
// conflicts.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// conflictsWithAbsence reports whether any of the employee's absences covers
// the vacation start date and lasts longer than thresholdDays. The first
// qualifying absence decides.
func conflictsWithAbsence(start time.Time, absences []employee.Absence, thresholdDays int) bool {
	start = employee.DateOnly(start)
	for _, a := range absences {
		absStart := employee.DateOnly(a.StartDate)
		absEnd := farFuture
		if a.EndDate != nil {
			absEnd = employee.DateOnly(*a.EndDate)
		}
		if start.Before(absStart) || start.After(absEnd) {
			continue
		}
		if employee.AbsenceDays(a, farFuture) > thresholdDays {
			return true
		}
	}
	return false
}
