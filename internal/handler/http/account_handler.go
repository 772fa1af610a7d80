package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/account"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse mirrors the shape the storefront UI expects: a success
// flag, the display identity on success, a reason otherwise.
type AuthResponse struct {
	Success bool              `json:"success"`
	User    *account.Identity `json:"user,omitempty"`
	Reason  string            `json:"reason,omitempty"`
}

type AccountHandler struct {
	service  account.Service
	validate *validator.Validate
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AccountHandler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.handleRegister)
	router.Post("/login", h.handleLogin)
}

func (h *AccountHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var requestPayload RegisterRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode register request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Reason: "invalid_input"})
		return
	}

	identity, err := h.service.Register(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user via service")

		reason := "server_error"
		if errors.Is(err, account.ErrEmailExists) {
			reason = "email_exists"
		}

		respondWithJSON(w, mapErrorToStatusCode(err), AuthResponse{Success: false, Reason: reason})
		return
	}

	respondWithJSON(w, http.StatusCreated, AuthResponse{Success: true, User: &identity})
}

func (h *AccountHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var requestPayload LoginRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode login request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Reason: "invalid_input"})
		return
	}

	identity, err := h.service.Login(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to login user via service")

		reason := "server_error"
		switch {
		case errors.Is(err, account.ErrNotFound):
			reason = "not_found"
		case errors.Is(err, account.ErrInvalidCredentials):
			reason = "wrong_password"
		}

		respondWithJSON(w, mapErrorToStatusCode(err), AuthResponse{Success: false, Reason: reason})
		return
	}

	respondWithJSON(w, http.StatusOK, AuthResponse{Success: true, User: &identity})
}
