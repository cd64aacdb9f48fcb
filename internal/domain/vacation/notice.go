package vacation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
)

// NoticeData is everything the printed vacation notice carries.
type NoticeData struct {
	Registration string
	EmployeeName string
	Location     string
	PlanYear     int
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

func (s *Store) NoticeData(ctx context.Context, periodID string) (NoticeData, error) {
	var d NoticeData
	err := s.DB.QueryRow(ctx, `
    SELECT p.registration, e.name, e.location, pl.year,
           p.start_date, p.end_date, p.days, p.period_start, p.period_end
    FROM vacation_periods p
    JOIN employees e ON e.registration = p.registration
    JOIN vacation_plans pl ON pl.id = p.plan_id
    WHERE p.id = $1
  `, periodID).Scan(
		&d.Registration, &d.EmployeeName, &d.Location, &d.PlanYear,
		&d.StartDate, &d.EndDate, &d.Days, &d.PeriodStart, &d.PeriodEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return NoticeData{}, ErrNotFound
	}
	return d, err
}

// WriteNotice renders the vacation notice PDF for one period.
func WriteNotice(w io.Writer, data NoticeData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Vacation Notice")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.Registration))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Location: %s", data.Location))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Plan year: %d", data.PlanYear))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Vacation: %s to %s (%d days)",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02"), data.Days))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Acquisition period: %s to %s",
		data.PeriodStart.Format("2006-01-02"), data.PeriodEnd.Format("2006-01-02")))
	return pdf.Output(w)
}
