package vacation

import (
	"context"
	"testing"
	"time"

	"vacations/internal/domain/employee"
)

func TestConflictsWithAbsenceLongOverlap(t *testing.T) {
	end := date(2026, 2, 28)
	absences := []employee.Absence{{
		StartDate: date(2026, 2, 1),
		EndDate:   &end,
	}}

	if !conflictsWithAbsence(date(2026, 2, 10), absences, 15) {
		t.Fatal("28-day absence containing the start must conflict")
	}
}

func TestConflictsWithAbsenceShortOverlap(t *testing.T) {
	end := date(2026, 2, 10)
	absences := []employee.Absence{{
		StartDate: date(2026, 2, 1),
		EndDate:   &end,
	}}

	if conflictsWithAbsence(date(2026, 2, 5), absences, 15) {
		t.Fatal("10-day absence must not conflict")
	}
}

func TestConflictsWithAbsenceNoOverlap(t *testing.T) {
	end := date(2026, 1, 31)
	absences := []employee.Absence{{
		StartDate: date(2026, 1, 1),
		EndDate:   &end,
	}}

	if conflictsWithAbsence(date(2026, 2, 10), absences, 15) {
		t.Fatal("absence not containing the start must not conflict")
	}
}

func TestConflictsWithAbsenceOpenEnded(t *testing.T) {
	absences := []employee.Absence{{
		StartDate: date(2026, 1, 1),
	}}

	if !conflictsWithAbsence(date(2026, 2, 10), absences, 15) {
		t.Fatal("open-ended absence must conflict via far-future sentinel")
	}
}

type fakeReconcileStore struct {
	views     []PeriodConflictView
	cancelled []string
	note      string
	from, to  time.Time
}

func (f *fakeReconcileStore) UpcomingPeriods(ctx context.Context, from, to time.Time) ([]PeriodConflictView, error) {
	f.from, f.to = from, to
	return f.views, nil
}

func (f *fakeReconcileStore) CancelPeriods(ctx context.Context, ids []string, note string) error {
	f.cancelled = append(f.cancelled, ids...)
	f.note = note
	return nil
}

func TestReconcileCancelsFirstConflictOnly(t *testing.T) {
	longEnd := date(2026, 3, 15)
	shortEnd := date(2026, 2, 12)
	p2End := date(2026, 2, 24)
	store := &fakeReconcileStore{
		views: []PeriodConflictView{
			{
				Period: Period{ID: "p1", StartDate: date(2026, 2, 10), Status: StatusPlanned},
				Absences: []employee.Absence{
					{StartDate: date(2026, 2, 8), EndDate: &shortEnd},
					{StartDate: date(2026, 2, 1), EndDate: &longEnd},
				},
			},
			{
				Period: Period{ID: "p2", StartDate: date(2026, 2, 20), Status: StatusConfirmed},
				Absences: []employee.Absence{
					{StartDate: date(2026, 2, 18), EndDate: &p2End},
				},
			},
		},
	}

	r := &Reconciler{Store: store, WindowDays: 30, LongAbsenceDays: 15}
	result, err := r.Reconcile(context.Background(), date(2026, 2, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CancelledCount != 1 || result.CancelledIDs[0] != "p1" {
		t.Fatalf("expected only p1 cancelled, got %v", result.CancelledIDs)
	}
	if store.note == "" {
		t.Fatal("expected timestamped cancellation note")
	}
}

func TestReconcileWindowBounds(t *testing.T) {
	store := &fakeReconcileStore{}
	r := &Reconciler{Store: store, WindowDays: 30, LongAbsenceDays: 15}

	now := date(2026, 2, 1)
	if _, err := r.Reconcile(context.Background(), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.from.Equal(now) {
		t.Fatalf("window start %v, want %v", store.from, now)
	}
	if !store.to.Equal(now.AddDate(0, 0, 30)) {
		t.Fatalf("window end %v, want %v", store.to, now.AddDate(0, 0, 30))
	}
}

func TestReconcileNoConflictsNoUpdate(t *testing.T) {
	shortEnd := date(2026, 2, 12)
	store := &fakeReconcileStore{
		views: []PeriodConflictView{{
			Period: Period{ID: "p1", StartDate: date(2026, 2, 10), Status: StatusPlanned},
			Absences: []employee.Absence{
				{StartDate: date(2026, 2, 8), EndDate: &shortEnd},
			},
		}},
	}

	r := &Reconciler{Store: store, WindowDays: 30, LongAbsenceDays: 15}
	result, err := r.Reconcile(context.Background(), date(2026, 2, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CancelledCount != 0 {
		t.Fatalf("expected no cancellations, got %d", result.CancelledCount)
	}
	if len(store.cancelled) != 0 {
		t.Fatal("store must not be touched when nothing conflicts")
	}
}
