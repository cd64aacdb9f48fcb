package vacation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"vacations/internal/domain/employee"
	"vacations/internal/platform/querier"
)

// noticeMarker flags an employee serving notice ("aviso prévio") in the
// free-text current status; those employees never enter a distribution.
const noticeMarker = "%aviso%"

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) EligibleCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT registration, name, admission_date, status,
           period_start, period_end, deadline,
           unexcused_absences, day_balance, location, convention,
           COALESCE(current_status, '')
    FROM employees
    WHERE status = 'active'
      AND deadline IS NOT NULL
      AND COALESCE(current_status, '') NOT ILIKE $1
    ORDER BY deadline, registration
  `, noticeMarker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	index := make(map[string]int)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.Registration, &e.Name, &e.AdmissionDate, &e.Status,
			&e.PeriodStart, &e.PeriodEnd, &e.Deadline,
			&e.UnexcusedAbsences, &e.DayBalance, &e.Location, &e.Convention,
			&e.CurrentStatus,
		); err != nil {
			return nil, err
		}
		index[e.Registration] = len(candidates)
		candidates = append(candidates, Candidate{Employee: e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return candidates, nil
	}

	registrations := make([]string, 0, len(candidates))
	for _, c := range candidates {
		registrations = append(registrations, c.Employee.Registration)
	}

	absRows, err := s.DB.Query(ctx, `
    SELECT id, registration, reason, start_date, end_date, counts_against_period, created_at
    FROM absences
    WHERE registration = ANY($1)
    ORDER BY registration, start_date
  `, registrations)
	if err != nil {
		return nil, err
	}
	defer absRows.Close()

	for absRows.Next() {
		var a employee.Absence
		if err := absRows.Scan(&a.ID, &a.Registration, &a.Reason, &a.StartDate, &a.EndDate, &a.CountsAgainstPeriod, &a.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[a.Registration]; ok {
			candidates[i].Absences = append(candidates[i].Absences, a)
		}
	}
	return candidates, absRows.Err()
}

// SaveDistribution archives the year's active plan, creates the replacement
// and inserts all assigned periods in one transaction. Any failure rolls the
// whole distribution back.
func (s *Store) SaveDistribution(ctx context.Context, year int, description string, assignments []Assignment) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE vacation_plans
    SET status = 'archived'
    WHERE year = $1 AND status = 'active'
  `, year); err != nil {
		return "", err
	}

	var planID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO vacation_plans (year, status, description)
    VALUES ($1, 'active', $2)
    RETURNING id
  `, year, description).Scan(&planID); err != nil {
		return "", err
	}

	batch := &pgx.Batch{}
	for _, a := range assignments {
		batch.Queue(`
      INSERT INTO vacation_periods
        (registration, plan_id, start_date, end_date, days, status, period_start, period_end)
      VALUES ($1,$2,$3,$4,$5,'planned',$6,$7)
    `, a.Registration, planID, a.Start, a.End, a.Days, a.PeriodStart, a.PeriodEnd)
	}
	results := tx.SendBatch(ctx, batch)
	for range assignments {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return "", err
		}
	}
	if err := results.Close(); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return planID, nil
}

func (s *Store) UpcomingPeriods(ctx context.Context, from, to time.Time) ([]PeriodConflictView, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, registration, plan_id, start_date, end_date, days, status,
           period_start, period_end, manual_adjustment, needs_replacement,
           substitute_id, COALESCE(note, ''), created_at, updated_at
    FROM vacation_periods
    WHERE status IN ('planned', 'confirmed')
      AND start_date >= $1 AND start_date <= $2
    ORDER BY start_date, id
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]PeriodConflictView, 0)
	index := make(map[string][]int)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		index[p.Registration] = append(index[p.Registration], len(views))
		views = append(views, PeriodConflictView{Period: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	registrations := make([]string, 0, len(index))
	for reg := range index {
		registrations = append(registrations, reg)
	}

	absRows, err := s.DB.Query(ctx, `
    SELECT id, registration, reason, start_date, end_date, counts_against_period, created_at
    FROM absences
    WHERE registration = ANY($1)
    ORDER BY registration, start_date
  `, registrations)
	if err != nil {
		return nil, err
	}
	defer absRows.Close()

	for absRows.Next() {
		var a employee.Absence
		if err := absRows.Scan(&a.ID, &a.Registration, &a.Reason, &a.StartDate, &a.EndDate, &a.CountsAgainstPeriod, &a.CreatedAt); err != nil {
			return nil, err
		}
		for _, i := range index[a.Registration] {
			views[i].Absences = append(views[i].Absences, a)
		}
	}
	return views, absRows.Err()
}

func (s *Store) CancelPeriods(ctx context.Context, ids []string, note string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE vacation_periods
    SET status = 'cancelled', note = $2, updated_at = now()
    WHERE id = ANY($1)
  `, ids, note)
	return err
}

type PeriodFilter struct {
	Year         int
	Registration string
	Status       string
}

func (s *Store) ListPeriods(ctx context.Context, filter PeriodFilter) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.registration, p.plan_id, p.start_date, p.end_date, p.days, p.status,
           p.period_start, p.period_end, p.manual_adjustment, p.needs_replacement,
           p.substitute_id, COALESCE(p.note, ''), p.created_at, p.updated_at,
           e.name
    FROM vacation_periods p
    JOIN vacation_plans pl ON pl.id = p.plan_id
    JOIN employees e ON e.registration = p.registration
    WHERE ($1 = 0 OR pl.year = $1)
      AND ($2 = '' OR p.registration = $2)
      AND ($3 = '' OR p.status = $3)
    ORDER BY p.start_date, p.registration
  `, filter.Year, filter.Registration, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]Period, 0)
	for rows.Next() {
		var p Period
		if err := rows.Scan(
			&p.ID, &p.Registration, &p.PlanID, &p.StartDate, &p.EndDate, &p.Days, &p.Status,
			&p.PeriodStart, &p.PeriodEnd, &p.ManualAdjustment, &p.NeedsReplacement,
			&p.SubstituteID, &p.Note, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName,
		); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) GetPeriod(ctx context.Context, id string) (Period, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, registration, plan_id, start_date, end_date, days, status,
           period_start, period_end, manual_adjustment, needs_replacement,
           substitute_id, COALESCE(note, ''), created_at, updated_at
    FROM vacation_periods
    WHERE id = $1
  `, id)
	p, err := scanPeriod(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrNotFound
	}
	return p, err
}

type PeriodUpdate struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	Note             *string
	NeedsReplacement *bool
	SubstituteID     *string
}

// UpdatePeriod applies a manual edit and flips the manual-adjustment flag.
func (s *Store) UpdatePeriod(ctx context.Context, id string, update PeriodUpdate) (Period, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE vacation_periods
    SET start_date = COALESCE($2, start_date),
        end_date = COALESCE($3, end_date),
        days = CASE
          WHEN $2::date IS NOT NULL OR $3::date IS NOT NULL
          THEN (COALESCE($3, end_date)::date - COALESCE($2, start_date)::date) + 1
          ELSE days
        END,
        status = COALESCE($4, status),
        note = COALESCE($5, note),
        needs_replacement = COALESCE($6, needs_replacement),
        substitute_id = COALESCE($7, substitute_id),
        manual_adjustment = TRUE,
        updated_at = now()
    WHERE id = $1
  `, id, update.StartDate, update.EndDate, update.Status, update.Note, update.NeedsReplacement, update.SubstituteID)
	if err != nil {
		return Period{}, err
	}
	if tag.RowsAffected() == 0 {
		return Period{}, ErrNotFound
	}
	return s.GetPeriod(ctx, id)
}

func scanPeriod(row pgx.Row) (Period, error) {
	var p Period
	err := row.Scan(
		&p.ID, &p.Registration, &p.PlanID, &p.StartDate, &p.EndDate, &p.Days, &p.Status,
		&p.PeriodStart, &p.PeriodEnd, &p.ManualAdjustment, &p.NeedsReplacement,
		&p.SubstituteID, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
