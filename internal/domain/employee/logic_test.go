package employee

import (
	"testing"
	"time"
)

func TestDayBalanceTiers(t *testing.T) {
	cases := []struct {
		absences int
		want     int
	}{
		{0, 30}, {5, 30},
		{6, 24}, {14, 24},
		{15, 18}, {23, 18},
		{24, 12}, {32, 12},
		{33, 0}, {90, 0},
	}
	for _, tc := range cases {
		if got := DayBalance(tc.absences); got != tc.want {
			t.Fatalf("DayBalance(%d) = %d, want %d", tc.absences, got, tc.want)
		}
	}
}

func TestDeadlineIsElevenMonthsAfterPeriodEnd(t *testing.T) {
	end := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	want := time.Date(2026, 12, 9, 0, 0, 0, 0, time.UTC)
	if got := Deadline(end); !got.Equal(want) {
		t.Fatalf("Deadline(%v) = %v, want %v", end, got, want)
	}

	end = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := Deadline(end); got.Month() != time.March || got.Year() != 2026 {
		t.Fatalf("Deadline(%v) = %v, expected normalized month arithmetic", end, got)
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		reason string
		want   AbsenceCategory
	}{
		{"Afastamento por doença", CategoryIllness},
		{"acidente de trabalho", CategoryIllness},
		{"Sickness leave", CategoryIllness},
		{"Licença não remunerada", CategoryUnpaidLeave},
		{"licenca nao remunerada", CategoryUnpaidLeave},
		{"Licença maternidade", CategoryUnpaidLeave},
		{"Suspensão disciplinar", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		if got := Categorize(tc.reason); got != tc.want {
			t.Fatalf("Categorize(%q) = %v, want %v", tc.reason, got, tc.want)
		}
	}
}

func TestAbsenceDaysInclusive(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	a := Absence{StartDate: start, EndDate: &end}
	if got := AbsenceDays(a, time.Time{}); got != 10 {
		t.Fatalf("expected 10 days, got %d", got)
	}

	open := Absence{StartDate: start}
	fallback := start.AddDate(0, 0, 19)
	if got := AbsenceDays(open, fallback); got != 20 {
		t.Fatalf("expected 20 days via fallback end, got %d", got)
	}
}
