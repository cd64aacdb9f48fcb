package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"vacations/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  registration, name, admission_date, status,
  period_start, period_end, deadline,
  unexcused_absences, day_balance, location, convention,
  COALESCE(current_status, ''), created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.Registration, &e.Name, &e.AdmissionDate, &e.Status,
		&e.PeriodStart, &e.PeriodEnd, &e.Deadline,
		&e.UnexcusedAbsences, &e.DayBalance, &e.Location, &e.Convention,
		&e.CurrentStatus, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (s *Store) GetByRegistration(ctx context.Context, registration string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE registration = $1
  `, registration)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, status string, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE ($1 = '' OR status = $1)
    ORDER BY registration
    LIMIT $2 OFFSET $3
  `, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) ListAbsences(ctx context.Context, registration string) ([]Absence, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, registration, reason, start_date, end_date, counts_against_period, created_at
    FROM absences
    WHERE registration = $1
    ORDER BY start_date
  `, registration)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := make([]Absence, 0)
	for rows.Next() {
		var a Absence
		if err := rows.Scan(&a.ID, &a.Registration, &a.Reason, &a.StartDate, &a.EndDate, &a.CountsAgainstPeriod, &a.CreatedAt); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}

func (s *Store) UpdateAccrual(ctx context.Context, registration string, accrual Accrual) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET period_start = $2,
        period_end = $3,
        deadline = $4,
        day_balance = $5,
        unexcused_absences = $6,
        updated_at = now()
    WHERE registration = $1
  `, registration, accrual.PeriodStart, accrual.PeriodEnd, accrual.Deadline, accrual.DayBalance, accrual.UnexcusedAbsences)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert writes the import-owned base fields, leaving derived fields to the
// accrual engine.
func (s *Store) Upsert(ctx context.Context, e Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (registration, name, admission_date, status, unexcused_absences, location, convention, current_status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (registration)
    DO UPDATE SET name = EXCLUDED.name,
                  admission_date = EXCLUDED.admission_date,
                  status = EXCLUDED.status,
                  unexcused_absences = EXCLUDED.unexcused_absences,
                  location = EXCLUDED.location,
                  convention = EXCLUDED.convention,
                  current_status = EXCLUDED.current_status,
                  updated_at = now()
  `, e.Registration, e.Name, e.AdmissionDate, e.Status, e.UnexcusedAbsences, e.Location, e.Convention, e.CurrentStatus)
	return err
}

func (s *Store) AddAbsence(ctx context.Context, a Absence) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO absences (registration, reason, start_date, end_date, counts_against_period)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, a.Registration, a.Reason, a.StartDate, a.EndDate, a.CountsAgainstPeriod).Scan(&id)
	return id, err
}
