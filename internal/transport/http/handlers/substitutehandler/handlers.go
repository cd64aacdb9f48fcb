package substitutehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vacations/internal/domain/substitute"
	"vacations/internal/transport/http/api"
	"vacations/internal/transport/http/middleware"
)

type Handler struct {
	Store *substitute.Store
}

func NewHandler(store *substitute.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/substitutos", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/{substituteID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "substitutes_list_failed", "failed to list substitutes", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, subs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload substitute.Substitute
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Registration = strings.TrimSpace(payload.Registration)
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Registration == "" || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "registration and name are required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, substitute.ErrDuplicateRegistration) {
			api.Fail(w, http.StatusConflict, "duplicate_registration", "a substitute with this registration already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "substitute_create_failed", "failed to create substitute", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "substituteID")); err != nil {
		if errors.Is(err, substitute.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "substitute not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "substitute_delete_failed", "failed to delete substitute", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
