package vacation

import (
	"context"
	"fmt"
	"time"

	"vacations/internal/domain/employee"
)

type DistributionStore interface {
	// EligibleCandidates returns active employees with a deadline and no
	// notice status, ordered ascending by deadline, with absence history.
	EligibleCandidates(ctx context.Context) ([]Candidate, error)
	// SaveDistribution archives the active plan for the year, creates the
	// new active plan and inserts every period, all in one transaction.
	SaveDistribution(ctx context.Context, year int, description string, assignments []Assignment) (string, error)
}

type HolidaySource interface {
	ForYear(ctx context.Context, year int) []time.Time
}

type DistributorConfig struct {
	Capacity              int
	KeyByYear             bool
	LongAbsenceDays       int
	SundayOnlyConventions []string
}

// Distributor runs the annual allocation. One run per year at a time; the
// per-year lock makes a concurrent second run fail fast.
type Distributor struct {
	Store    DistributionStore
	Holidays HolidaySource
	Rules    StartRules

	capacity        int
	keyByYear       bool
	longAbsenceDays int
	locks           *yearLocks
}

func NewDistributor(store DistributionStore, holidays HolidaySource, cfg DistributorConfig) *Distributor {
	return &Distributor{
		Store:           store,
		Holidays:        holidays,
		Rules:           NewStartRules(cfg.SundayOnlyConventions),
		capacity:        cfg.Capacity,
		keyByYear:       cfg.KeyByYear,
		longAbsenceDays: cfg.LongAbsenceDays,
		locks:           newYearLocks(),
	}
}

func (d *Distributor) Distribute(ctx context.Context, year int, description string, now time.Time) (DistributionResult, error) {
	if year < 2000 || year > 2100 {
		return DistributionResult{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if !d.locks.acquire(year) {
		return DistributionResult{}, ErrDistributionRunning
	}
	defer d.locks.release(year)

	candidates, err := d.Store.EligibleCandidates(ctx)
	if err != nil {
		return DistributionResult{}, fmt.Errorf("loading eligible employees: %w", err)
	}

	holidays := NewHolidaySet(d.Holidays.ForYear(ctx, year))

	assignments, excluded := PlanPeriods(PlanInput{
		Candidates:      candidates,
		Holidays:        holidays,
		Today:           now,
		Rules:           d.Rules,
		Capacity:        d.capacity,
		KeyByYear:       d.keyByYear,
		LongAbsenceDays: d.longAbsenceDays,
	})

	planID, err := d.Store.SaveDistribution(ctx, year, description, assignments)
	if err != nil {
		return DistributionResult{}, fmt.Errorf("distribution for %d failed: %w", year, err)
	}

	return DistributionResult{
		PlanID:         planID,
		Year:           year,
		PeriodsCreated: len(assignments),
		Excluded:       excluded,
	}, nil
}

type ReconcileStore interface {
	// UpcomingPeriods returns planned or confirmed periods starting inside
	// [from, to], each joined with the employee's absences.
	UpcomingPeriods(ctx context.Context, from, to time.Time) ([]PeriodConflictView, error)
	CancelPeriods(ctx context.Context, ids []string, note string) error
}

// Reconciler cancels scheduled vacations that collide with long absences
// recorded after the plan was produced. Cancelled periods never match the
// selection again, so repeated runs are idempotent.
type Reconciler struct {
	Store           ReconcileStore
	WindowDays      int
	LongAbsenceDays int
}

func (r *Reconciler) Reconcile(ctx context.Context, now time.Time) (ReconcileResult, error) {
	from := employee.DateOnly(now)
	to := from.AddDate(0, 0, r.WindowDays)

	views, err := r.Store.UpcomingPeriods(ctx, from, to)
	if err != nil {
		return ReconcileResult{}, err
	}

	cancelled := make([]string, 0)
	for _, view := range views {
		if conflictsWithAbsence(view.Period.StartDate, view.Absences, r.LongAbsenceDays) {
			cancelled = append(cancelled, view.Period.ID)
		}
	}

	if len(cancelled) > 0 {
		note := fmt.Sprintf("cancelled by conflict reconciliation at %s: overlapping long absence", now.UTC().Format(time.RFC3339))
		if err := r.Store.CancelPeriods(ctx, cancelled, note); err != nil {
			return ReconcileResult{}, err
		}
	}

	return ReconcileResult{CancelledCount: len(cancelled), CancelledIDs: cancelled}, nil
}
