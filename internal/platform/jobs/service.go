package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	JobDistribution = "vacation_distribution"
	JobReconcile    = "conflict_reconciliation"
)

type Service struct {
	DB    *pgxpool.Pool
	queue chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool) *Service {
	return &Service{
		DB:    db,
		queue: make(chan job, 64),
	}
}

// Start launches the worker plus the periodic reconciliation trigger. Both
// stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context, reconcileInterval time.Duration, reconcile func(context.Context) (any, error)) {
	go s.worker(ctx)
	if reconcileInterval > 0 {
		go s.scheduleReconcile(ctx, reconcileInterval, reconcile)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

// RunNow executes a job synchronously, still recording it in job_runs. Used
// by the HTTP triggers so callers get the result back.
func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, 'running')
    RETURNING id
  `, j.Type).Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleReconcile(ctx context.Context, interval time.Duration, reconcile func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobReconcile, reconcile)
		}
	}
}
