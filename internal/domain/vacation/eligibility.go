package vacation

import (
	"time"

	"vacations/internal/domain/employee"
)

const reasonLongAbsence = "active long absence"

// openEndedHorizonDays is how far an open-ended absence is assumed to run
// when measuring it for the eligibility exclusion.
const openEndedHorizonDays = 365

// activeLongAbsence reports whether the employee currently has an open or
// ongoing absence longer than thresholdDays. Open-ended absences are measured
// against today plus one year.
func activeLongAbsence(absences []employee.Absence, today time.Time, thresholdDays int) bool {
	today = employee.DateOnly(today)
	horizon := today.AddDate(0, 0, openEndedHorizonDays)
	for _, a := range absences {
		if a.EndDate != nil && a.EndDate.Before(today) {
			continue
		}
		if employee.AbsenceDays(a, horizon) > thresholdDays {
			return true
		}
	}
	return false
}
