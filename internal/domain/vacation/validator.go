package vacation

import (
	"time"

	"vacations/internal/domain/employee"
)

// HolidaySet holds public holidays normalized to midnight UTC.
type HolidaySet map[time.Time]struct{}

func NewHolidaySet(dates []time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[employee.DateOnly(d)] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[employee.DateOnly(date)]
	return ok
}

// StartRules decides whether a calendar date is an admissible vacation start.
type StartRules struct {
	// Convention codes for which only Sunday starts are disallowed.
	SundayOnlyConventions map[string]struct{}
}

func NewStartRules(sundayOnlyConventions []string) StartRules {
	set := make(map[string]struct{}, len(sundayOnlyConventions))
	for _, code := range sundayOnlyConventions {
		set[code] = struct{}{}
	}
	return StartRules{SundayOnlyConventions: set}
}

// ValidStart applies the weekday rules for the employee's convention, then
// rejects dates followed within two days by a public holiday.
func (r StartRules) ValidStart(date time.Time, convention string, holidays HolidaySet) bool {
	weekday := date.Weekday()
	if _, exempt := r.SundayOnlyConventions[convention]; exempt {
		if weekday == time.Sunday {
			return false
		}
	} else if weekday == time.Friday || weekday == time.Saturday || weekday == time.Sunday {
		return false
	}

	if holidays.Contains(date.AddDate(0, 0, 1)) || holidays.Contains(date.AddDate(0, 0, 2)) {
		return false
	}
	return true
}
