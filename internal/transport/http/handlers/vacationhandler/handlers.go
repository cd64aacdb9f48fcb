package vacationhandler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vacations/internal/domain/vacation"
	"vacations/internal/platform/jobs"
	"vacations/internal/platform/metrics"
	"vacations/internal/transport/http/api"
	"vacations/internal/transport/http/middleware"
	"vacations/internal/transport/http/shared"
)

type Handler struct {
	Store       *vacation.Store
	Distributor *vacation.Distributor
	Reconciler  *vacation.Reconciler
	Jobs        *jobs.Service
	Metrics     *metrics.Collector
}

func NewHandler(store *vacation.Store, dist *vacation.Distributor, rec *vacation.Reconciler, jobsSvc *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Distributor: dist, Reconciler: rec, Jobs: jobsSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ferias", func(r chi.Router) {
		r.Post("/distribuir", h.handleDistribute)
		r.Get("/", h.handleListPeriods)
		r.Get("/export", h.handleExport)
		r.Get("/{periodID}", h.handleGetPeriod)
		r.Put("/{periodID}", h.handleUpdatePeriod)
		r.Get("/{periodID}/aviso", h.handleNotice)
	})
	r.Post("/jobs/verificar-conflitos", h.handleReconcile)
}

type distributeRequest struct {
	Year        int    `json:"ano"`
	Description string `json:"descricao"`
}

func (h *Handler) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var payload distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Jobs.RunNow(r.Context(), jobs.JobDistribution, func(ctx context.Context) (any, error) {
		return h.Distributor.Distribute(ctx, payload.Year, payload.Description, time.Now())
	})
	if err != nil {
		switch {
		case errors.Is(err, vacation.ErrInvalidYear):
			api.Fail(w, http.StatusBadRequest, "invalid_year", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, vacation.ErrDistributionRunning):
			api.Fail(w, http.StatusConflict, "distribution_running", fmt.Sprintf("a distribution for %d is already running", payload.Year), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "distribution_failed", "failed to run vacation distribution", middleware.GetRequestID(r.Context()))
		}
		return
	}

	dist, ok := result.(vacation.DistributionResult)
	if ok {
		h.Metrics.RecordDistribution(dist.PeriodsCreated)
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.Jobs.RunNow(r.Context(), jobs.JobReconcile, func(ctx context.Context) (any, error) {
		return h.Reconciler.Reconcile(ctx, time.Now())
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reconcile_failed", "failed to run conflict reconciliation", middleware.GetRequestID(r.Context()))
		return
	}
	if rec, ok := result.(vacation.ReconcileResult); ok {
		h.Metrics.RecordCancellations(rec.CancelledCount)
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func periodFilterFromQuery(r *http.Request) (vacation.PeriodFilter, error) {
	var filter vacation.PeriodFilter
	if raw := r.URL.Query().Get("ano"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid year %q", raw)
		}
		filter.Year = year
	}
	filter.Registration = r.URL.Query().Get("matricula")
	filter.Status = r.URL.Query().Get("status")
	return filter, nil
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	filter, err := periodFilterFromQuery(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_filter", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	periods, err := h.Store.ListPeriods(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "periods_list_failed", "failed to list vacation periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Store.GetPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, vacation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "vacation period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_get_failed", "failed to load vacation period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

type updatePeriodRequest struct {
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	Status           *string `json:"status"`
	Note             *string `json:"note"`
	NeedsReplacement *bool   `json:"needsReplacement"`
	SubstituteID     *string `json:"substituteId"`
}

var allowedStatuses = map[string]bool{
	vacation.StatusRequested: true,
	vacation.StatusPlanned:   true,
	vacation.StatusConfirmed: true,
	vacation.StatusCancelled: true,
}

func (h *Handler) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload updatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	update := vacation.PeriodUpdate{
		Status:           payload.Status,
		Note:             payload.Note,
		NeedsReplacement: payload.NeedsReplacement,
		SubstituteID:     payload.SubstituteID,
	}

	start, err := shared.ParseOptionalDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	end, err := shared.ParseOptionalDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	update.StartDate = start
	update.EndDate = end

	if start != nil && end != nil && end.Before(*start) {
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date precedes start date", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Status != nil && !allowedStatuses[*payload.Status] {
		api.FailWithDetails(w, http.StatusBadRequest, "invalid_status", fmt.Sprintf("unknown status %q", *payload.Status),
			map[string]any{"allowed": []string{vacation.StatusRequested, vacation.StatusPlanned, vacation.StatusConfirmed, vacation.StatusCancelled}},
			middleware.GetRequestID(r.Context()))
		return
	}

	period, err := h.Store.UpdatePeriod(r.Context(), chi.URLParam(r, "periodID"), update)
	if err != nil {
		if errors.Is(err, vacation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "vacation period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_update_failed", "failed to update vacation period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := periodFilterFromQuery(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_filter", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	periods, err := h.Store.ListPeriods(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "periods_export_failed", "failed to export vacation periods", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ferias.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"matricula", "nome", "inicio", "fim", "dias", "status", "periodo_inicio", "periodo_fim", "ajuste_manual"})
	for _, p := range periods {
		_ = writer.Write([]string{
			p.Registration,
			p.EmployeeName,
			shared.FormatDate(p.StartDate),
			shared.FormatDate(p.EndDate),
			strconv.Itoa(p.Days),
			p.Status,
			shared.FormatDate(p.PeriodStart),
			shared.FormatDate(p.PeriodEnd),
			strconv.FormatBool(p.ManualAdjustment),
		})
	}
	writer.Flush()
}

func (h *Handler) handleNotice(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.NoticeData(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, vacation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "vacation period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "notice_failed", "failed to load vacation notice data", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="aviso-ferias-%s.pdf"`, data.Registration))
	if err := vacation.WriteNotice(w, data); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notice_render_failed", "failed to render vacation notice", middleware.GetRequestID(r.Context()))
	}
}
