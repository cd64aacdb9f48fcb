package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"vacations/internal/domain/employee"
)

// Expected CSV header. Column order is fixed; a header row is required.
var expectedHeader = []string{"matricula", "nome", "admissao", "status", "lotacao", "convencao", "faltas"}

type Store interface {
	Upsert(ctx context.Context, e employee.Employee) error
	employee.AccrualStore
}

type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Summary struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Import reads an employee CSV, upserts the base fields and recomputes the
// accrual for every imported row. Bad rows are reported and skipped; the
// import itself keeps going.
func Import(ctx context.Context, store Store, r io.Reader, now time.Time) (Summary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("reading csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return Summary{}, err
	}

	summary := Summary{Errors: make([]RowError, 0)}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		emp, err := parseRow(record)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		if err := store.Upsert(ctx, emp); err != nil {
			summary.Errors = append(summary.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		if _, err := employee.Recompute(ctx, store, emp.Registration, now); err != nil {
			summary.Errors = append(summary.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		summary.Imported++
	}

	return summary, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(expectedHeader), len(header))
	}
	for i, name := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("expected column %q at position %d, got %q", name, i+1, header[i])
		}
	}
	return nil
}

func parseRow(record []string) (employee.Employee, error) {
	registration := strings.TrimSpace(record[0])
	if registration == "" {
		return employee.Employee{}, fmt.Errorf("missing registration")
	}

	admission, err := time.Parse("2006-01-02", strings.TrimSpace(record[2]))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("invalid admission date %q", record[2])
	}

	status := strings.ToLower(strings.TrimSpace(record[3]))
	if status == "" {
		status = employee.StatusActive
	}
	if status != employee.StatusActive && status != employee.StatusInactive {
		return employee.Employee{}, fmt.Errorf("invalid status %q", record[3])
	}

	absences := 0
	if raw := strings.TrimSpace(record[6]); raw != "" {
		absences, err = strconv.Atoi(raw)
		if err != nil || absences < 0 {
			return employee.Employee{}, fmt.Errorf("invalid absence count %q", record[6])
		}
	}

	return employee.Employee{
		Registration:      registration,
		Name:              strings.TrimSpace(record[1]),
		AdmissionDate:     admission,
		Status:            status,
		Location:          strings.TrimSpace(record[4]),
		Convention:        strings.TrimSpace(record[5]),
		UnexcusedAbsences: absences,
	}, nil
}
