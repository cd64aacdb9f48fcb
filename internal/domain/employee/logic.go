package employee

import (
	"strings"
	"time"
)

type AbsenceCategory int

const (
	CategoryOther AbsenceCategory = iota
	CategoryIllness
	CategoryUnpaidLeave
)

// Reason texts come from free-form HR data entry, so categorization is a
// case-insensitive substring match. Portuguese spellings first, import data
// occasionally carries English terms.
var illnessKeywords = []string{
	"doença", "doenca", "enfermidade", "acidente",
	"illness", "sickness", "accident",
}

var unpaidLeaveKeywords = []string{
	"não remunerada", "nao remunerada", "sem remuneração", "sem remuneracao",
	"maternidade", "unpaid", "confinement",
}

func Categorize(reason string) AbsenceCategory {
	normalized := strings.ToLower(reason)
	for _, keyword := range illnessKeywords {
		if strings.Contains(normalized, keyword) {
			return CategoryIllness
		}
	}
	for _, keyword := range unpaidLeaveKeywords {
		if strings.Contains(normalized, keyword) {
			return CategoryUnpaidLeave
		}
	}
	return CategoryOther
}

// DayBalance maps the unexcused-absence count to owed vacation days per the
// statutory step function.
func DayBalance(unexcusedAbsences int) int {
	switch {
	case unexcusedAbsences <= 5:
		return 30
	case unexcusedAbsences <= 14:
		return 24
	case unexcusedAbsences <= 23:
		return 18
	case unexcusedAbsences <= 32:
		return 12
	default:
		return 0
	}
}

// Deadline is the latest date vacation accrued for a period may be taken.
func Deadline(periodEnd time.Time) time.Time {
	return periodEnd.AddDate(0, 11, 0)
}

// DateOnly truncates to midnight UTC so calendar arithmetic is stable.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AbsenceDays returns the inclusive day count of an absence. Open-ended
// absences are measured against openEndFallback.
func AbsenceDays(a Absence, openEndFallback time.Time) int {
	end := openEndFallback
	if a.EndDate != nil {
		end = *a.EndDate
	}
	return inclusiveDays(a.StartDate, end)
}

func inclusiveDays(start, end time.Time) int {
	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// overlapDays counts the days an absence interval shares with a window,
// clamping open ends to the window itself.
func overlapDays(a Absence, windowStart, windowEnd time.Time) int {
	start := DateOnly(a.StartDate)
	end := DateOnly(windowEnd)
	if a.EndDate != nil && a.EndDate.Before(windowEnd) {
		end = DateOnly(*a.EndDate)
	}
	if start.Before(windowStart) {
		start = DateOnly(windowStart)
	}
	return inclusiveDays(start, end)
}
