package vacation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vacations/internal/domain/employee"
	"vacations/internal/platform/holiday"
)

type fakeDistributionStore struct {
	mu         sync.Mutex
	candidates []Candidate
	saveErr    error
	saved      [][]Assignment

	// When set, EligibleCandidates signals started once and parks on block.
	block   chan struct{}
	started chan struct{}
	once    sync.Once
}

func (f *fakeDistributionStore) EligibleCandidates(ctx context.Context) ([]Candidate, error) {
	if f.block != nil {
		f.once.Do(func() { close(f.started) })
		<-f.block
	}
	return f.candidates, nil
}

func (f *fakeDistributionStore) SaveDistribution(ctx context.Context, year int, description string, assignments []Assignment) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, assignments)
	return "plan-1", nil
}

type staticHolidays struct{}

func (staticHolidays) ForYear(ctx context.Context, year int) []time.Time {
	return holiday.Fallback(year)
}

func newTestDistributor(store DistributionStore) *Distributor {
	return NewDistributor(store, staticHolidays{}, DistributorConfig{
		Capacity:        5,
		LongAbsenceDays: 15,
	})
}

func TestDistributeRejectsInvalidYear(t *testing.T) {
	d := newTestDistributor(&fakeDistributionStore{})
	_, err := d.Distribute(context.Background(), 99, "", time.Now())
	if !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestDistributeReportsCreatedAndExcluded(t *testing.T) {
	healthy := candidate("1001", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))
	away := candidate("1002", "X", 30,
		date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))
	away.Absences = append(away.Absences, openAbsence("1002", date(2026, 1, 1)))

	store := &fakeDistributionStore{candidates: []Candidate{healthy, away}}
	d := newTestDistributor(store)

	result, err := d.Distribute(context.Background(), 2026, "annual plan", date(2026, 1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PeriodsCreated != 1 {
		t.Fatalf("expected 1 period created, got %d", result.PeriodsCreated)
	}
	if len(result.Excluded) != 1 || result.Excluded[0].Registration != "1002" {
		t.Fatalf("expected 1002 excluded, got %v", result.Excluded)
	}
	if result.PlanID != "plan-1" {
		t.Fatalf("expected plan id from store, got %q", result.PlanID)
	}
}

func TestDistributeSaveFailurePropagatesWithNoResult(t *testing.T) {
	boom := errors.New("insert failed")
	store := &fakeDistributionStore{
		candidates: []Candidate{candidate("1001", "X", 30,
			date(2026, 1, 10), date(2027, 1, 9), date(2027, 12, 9))},
		saveErr: boom,
	}
	d := newTestDistributor(store)

	_, err := d.Distribute(context.Background(), 2026, "", date(2026, 1, 2))
	if !errors.Is(err, boom) {
		t.Fatalf("expected save error surfaced, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("failed save must leave nothing persisted")
	}
}

func TestDistributeSerializedPerYear(t *testing.T) {
	store := &fakeDistributionStore{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	d := newTestDistributor(store)

	errCh := make(chan error, 1)
	go func() {
		_, err := d.Distribute(context.Background(), 2026, "", date(2026, 1, 2))
		errCh <- err
	}()

	// Wait until the first run holds the year lock inside the store call.
	select {
	case <-store.started:
	case <-time.After(time.Second):
		t.Fatal("first run never reached the store")
	}

	if _, err := d.Distribute(context.Background(), 2026, "", date(2026, 1, 2)); !errors.Is(err, ErrDistributionRunning) {
		t.Fatalf("expected ErrDistributionRunning for concurrent same-year run, got %v", err)
	}

	close(store.block)
	if err := <-errCh; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Lock released: the year is runnable again, and another year was never
	// serialized against it.
	if _, err := d.Distribute(context.Background(), 2026, "", date(2026, 1, 2)); err != nil {
		t.Fatalf("expected lock released after run: %v", err)
	}
	if _, err := d.Distribute(context.Background(), 2027, "", date(2026, 1, 2)); err != nil {
		t.Fatalf("other year must be runnable: %v", err)
	}
}

func openAbsence(reg string, start time.Time) employee.Absence {
	return employee.Absence{
		Registration: reg,
		Reason:       "afastamento",
		StartDate:    start,
	}
}
