package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vacations/internal/domain/auth"
	"vacations/internal/transport/http/api"
	"vacations/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Store  *auth.Store
	Secret string
}

func NewHandler(store *auth.Store, secret string) *Handler {
	return &Handler{Store: store, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Store.Login(r.Context(), h.Secret, payload.Email, payload.Password, tokenTTL)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to process login", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"token": token}, middleware.GetRequestID(r.Context()))
}
