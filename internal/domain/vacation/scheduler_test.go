package vacation

import (
	"testing"
	"time"

	"vacations/internal/domain/employee"
)

func candidate(reg, location string, balance int, periodStart, periodEnd, deadline time.Time) Candidate {
	return Candidate{
		Employee: employee.Employee{
			Registration: reg,
			Name:         "Employee " + reg,
			Status:       employee.StatusActive,
			DayBalance:   balance,
			Location:     location,
			Convention:   "CCT-001",
			PeriodStart:  &periodStart,
			PeriodEnd:    &periodEnd,
			Deadline:     &deadline,
		},
	}
}

func basicInput(candidates []Candidate) PlanInput {
	return PlanInput{
		Candidates:      candidates,
		Holidays:        NewHolidaySet(nil),
		Today:           date(2026, 1, 2),
		Rules:           NewStartRules(nil),
		Capacity:        5,
		LongAbsenceDays: 15,
	}
}

func TestPlanPeriodsAssignsFirstValidDay(t *testing.T) {
	cand := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))

	assignments, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(excluded) != 0 {
		t.Fatalf("expected no exclusions, got %v", excluded)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}

	a := assignments[0]
	// Cursor starts at the period start (after today); 2026-01-10 is a
	// Saturday, 01-11 Sunday, so the first valid day is Monday 01-12.
	if !a.Start.Equal(date(2026, 1, 12)) {
		t.Fatalf("expected start 2026-01-12, got %v", a.Start)
	}
	if !a.End.Equal(date(2026, 2, 10)) {
		t.Fatalf("expected end = start + 29 days, got %v", a.End)
	}
	if a.Days != 30 {
		t.Fatalf("expected 30 days, got %d", a.Days)
	}
}

func TestPlanPeriodsCursorNeverBeforeToday(t *testing.T) {
	cand := candidate("1001", "X", 30,
		date(2025, 6, 1), date(2026, 5, 31), date(2027, 4, 30))

	in := basicInput([]Candidate{cand})
	in.Today = date(2026, 1, 2) // Friday

	assignments, _ := PlanPeriods(in)
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].Start.Before(in.Today) {
		t.Fatalf("start %v precedes today %v", assignments[0].Start, in.Today)
	}
}

func TestPlanPeriodsCapacityPerLocationMonth(t *testing.T) {
	candidates := make([]Candidate, 0, 6)
	for i := 0; i < 6; i++ {
		reg := string(rune('A' + i))
		candidates = append(candidates, candidate(reg, "X", 30,
			date(2026, 3, 1), date(2027, 2, 28), date(2028, 1, 31)))
	}

	in := basicInput(candidates)
	in.Today = date(2026, 3, 1)

	assignments, _ := PlanPeriods(in)
	if len(assignments) != 6 {
		t.Fatalf("expected all 6 scheduled, got %d", len(assignments))
	}

	perMonth := make(map[string]int)
	for _, a := range assignments {
		perMonth[occupancyKey("X", a.Start, false)]++
	}
	for key, count := range perMonth {
		if count > 5 {
			t.Fatalf("occupancy for %s exceeds capacity: %d", key, count)
		}
	}
	// The sixth employee must have spilled out of March.
	if perMonth["X|March"] != 5 {
		t.Fatalf("expected March fully occupied, got %d", perMonth["X|March"])
	}
	if perMonth["X|April"] != 1 {
		t.Fatalf("expected sixth start pushed to April, got %v", perMonth)
	}
}

func TestPlanPeriodsMonthNameKeySpansYears(t *testing.T) {
	// Historical behavior: March 2026 and March 2027 share one bucket.
	k1 := occupancyKey("X", date(2026, 3, 10), false)
	k2 := occupancyKey("X", date(2027, 3, 10), false)
	if k1 != k2 {
		t.Fatalf("month-name keys must collide across years: %s vs %s", k1, k2)
	}

	y1 := occupancyKey("X", date(2026, 3, 10), true)
	y2 := occupancyKey("X", date(2027, 3, 10), true)
	if y1 == y2 {
		t.Fatal("year+month keys must not collide across years")
	}
}

func TestPlanPeriodsExcludesActiveLongAbsence(t *testing.T) {
	cand := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))
	end := date(2026, 2, 15)
	cand.Absences = []employee.Absence{{
		Registration: "1001",
		Reason:       "licença não remunerada",
		StartDate:    date(2026, 1, 1),
		EndDate:      &end,
	}}

	assignments, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(assignments) != 0 {
		t.Fatalf("expected no assignment, got %d", len(assignments))
	}
	if len(excluded) != 1 || excluded[0].Reason != reasonLongAbsence {
		t.Fatalf("expected long-absence exclusion, got %v", excluded)
	}
}

func TestPlanPeriodsOpenEndedAbsenceExcludes(t *testing.T) {
	cand := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))
	cand.Absences = []employee.Absence{{
		Registration: "1001",
		Reason:       "afastamento",
		StartDate:    date(2025, 12, 20),
	}}

	_, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(excluded) != 1 {
		t.Fatalf("open-ended absence must exclude, got %v", excluded)
	}
}

func TestPlanPeriodsShortAbsenceDoesNotExclude(t *testing.T) {
	cand := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))
	end := date(2026, 1, 12)
	cand.Absences = []employee.Absence{{
		Registration: "1001",
		Reason:       "consulta médica",
		StartDate:    date(2026, 1, 5),
		EndDate:      &end,
	}}

	assignments, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(excluded) != 0 {
		t.Fatalf("short absence must not exclude: %v", excluded)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected assignment, got %d", len(assignments))
	}
}

func TestPlanPeriodsSkipsZeroBalanceSilently(t *testing.T) {
	cand := candidate("1001", "X", 0,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))

	assignments, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(assignments) != 0 || len(excluded) != 0 {
		t.Fatalf("zero balance must be skipped without exclusion record")
	}
}

func TestPlanPeriodsSilentSkipWhenNoDayBeforeDeadline(t *testing.T) {
	// Deadline right after the period start leaves no admissible day.
	cand := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2026, 1, 11))

	assignments, excluded := PlanPeriods(basicInput([]Candidate{cand}))
	if len(assignments) != 0 {
		t.Fatalf("expected no assignment, got %d", len(assignments))
	}
	if len(excluded) != 0 {
		t.Fatalf("unschedulable employee must not be recorded as excluded")
	}
}

func TestPlanPeriodsDeterministic(t *testing.T) {
	candidates := []Candidate{
		candidate("1001", "X", 30, date(2026, 1, 10), date(2027, 1, 9), date(2027, 6, 9)),
		candidate("1002", "X", 24, date(2026, 2, 1), date(2027, 1, 31), date(2027, 12, 31)),
		candidate("1003", "Y", 18, date(2026, 1, 5), date(2027, 1, 4), date(2027, 12, 4)),
	}

	first, _ := PlanPeriods(basicInput(candidates))
	second, _ := PlanPeriods(basicInput(candidates))
	if len(first) != len(second) {
		t.Fatalf("runs differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
