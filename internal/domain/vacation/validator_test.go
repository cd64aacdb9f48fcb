package vacation

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidStartRejectsWeekendAdjacentDays(t *testing.T) {
	rules := NewStartRules(nil)
	holidays := NewHolidaySet(nil)

	// 2026-03-02 is a Monday.
	monday := date(2026, 3, 2)
	for offset, want := range map[int]bool{
		0: true,  // Monday
		1: true,  // Tuesday
		2: true,  // Wednesday
		3: true,  // Thursday
		4: false, // Friday
		5: false, // Saturday
		6: false, // Sunday
	} {
		day := monday.AddDate(0, 0, offset)
		if got := rules.ValidStart(day, "CCT-001", holidays); got != want {
			t.Fatalf("ValidStart(%s %s) = %v, want %v", day.Weekday(), day.Format("2006-01-02"), got, want)
		}
	}
}

func TestValidStartSundayOnlyConvention(t *testing.T) {
	rules := NewStartRules([]string{"CCT-EXC"})
	holidays := NewHolidaySet(nil)

	friday := date(2026, 3, 6)
	saturday := date(2026, 3, 7)
	sunday := date(2026, 3, 8)

	if !rules.ValidStart(friday, "CCT-EXC", holidays) {
		t.Fatal("exception convention must allow Friday starts")
	}
	if !rules.ValidStart(saturday, "CCT-EXC", holidays) {
		t.Fatal("exception convention must allow Saturday starts")
	}
	if rules.ValidStart(sunday, "CCT-EXC", holidays) {
		t.Fatal("Sunday is disallowed for every convention")
	}
	if rules.ValidStart(friday, "CCT-001", holidays) {
		t.Fatal("non-exception convention must reject Friday")
	}
}

func TestValidStartRejectsHolidayBridges(t *testing.T) {
	rules := NewStartRules(nil)
	// 2026-04-21 is a Tuesday holiday.
	holidays := NewHolidaySet([]time.Time{date(2026, 4, 21)})

	if rules.ValidStart(date(2026, 4, 20), "CCT-001", holidays) {
		t.Fatal("day before a holiday must be rejected")
	}
	// Sunday 2026-04-19 already fails the weekday rule; check a Monday two
	// days ahead of a Wednesday holiday instead.
	wednesdayHoliday := NewHolidaySet([]time.Time{date(2026, 4, 22)})
	if rules.ValidStart(date(2026, 4, 20), "CCT-001", wednesdayHoliday) {
		t.Fatal("two days before a holiday must be rejected")
	}
	if !rules.ValidStart(date(2026, 4, 27), "CCT-001", wednesdayHoliday) {
		t.Fatal("Monday clear of holidays must be accepted")
	}
}
