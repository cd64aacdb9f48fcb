package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vacations/internal/domain/employee"
	"vacations/internal/domain/importer"
	"vacations/internal/transport/http/api"
	"vacations/internal/transport/http/middleware"
	"vacations/internal/transport/http/shared"
)

const maxImportMultipartBytes = 8 * 1024 * 1024

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/funcionarios", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/import", h.handleImport)
		r.Get("/{registration}", h.handleGet)
		r.Get("/{registration}/ausencias", h.handleListAbsences)
		r.Post("/{registration}/ausencias", h.handleAddAbsence)
		r.Post("/{registration}/recalcular", h.handleRecalculate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	employees, err := h.Store.List(r.Context(), status, limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetByRegistration(r.Context(), chi.URLParam(r, "registration"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.Store.ListAbsences(r.Context(), chi.URLParam(r, "registration"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "absences_list_failed", "failed to list absences", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, absences, middleware.GetRequestID(r.Context()))
}

type addAbsenceRequest struct {
	Reason              string `json:"reason"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	CountsAgainstPeriod bool   `json:"countsAgainstPeriod"`
}

// handleAddAbsence records an absence and, when it affects the entitlement
// window, recomputes the employee's accrual right away so the next
// distribution sees the updated period.
func (h *Handler) handleAddAbsence(w http.ResponseWriter, r *http.Request) {
	registration := chi.URLParam(r, "registration")

	var payload addAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Reason == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "reason is required", middleware.GetRequestID(r.Context()))
		return
	}
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	end, err := shared.ParseOptionalDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if end != nil && end.Before(start) {
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date precedes start date", middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.Store.GetByRegistration(r.Context(), registration); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "absence_create_failed", "failed to record absence", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.AddAbsence(r.Context(), employee.Absence{
		Registration:        registration,
		Reason:              payload.Reason,
		StartDate:           start,
		EndDate:             end,
		CountsAgainstPeriod: payload.CountsAgainstPeriod,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "absence_create_failed", "failed to record absence", middleware.GetRequestID(r.Context()))
		return
	}

	if payload.CountsAgainstPeriod {
		if _, err := employee.Recompute(r.Context(), h.Store, registration, time.Now()); err != nil {
			slog.Warn("accrual recompute after absence failed", "registration", registration, "err", err)
		}
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	emp, err := employee.Recompute(r.Context(), h.Store, chi.URLParam(r, "registration"), time.Now())
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "recalculate_failed", "failed to recompute entitlement", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

// handleImport takes a multipart form with a single "file" field holding the
// employee CSV. Row failures come back in the summary instead of aborting
// the upload.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportMultipartBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "expected multipart form with a file field", middleware.GetRequestID(r.Context()))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "missing file field", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	summary, err := importer.Import(r.Context(), h.Store, file, time.Now())
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "import_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
