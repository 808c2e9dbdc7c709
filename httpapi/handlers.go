package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gatehouselabs/gatehouse"
	"github.com/gatehouselabs/gatehouse/internal/logging"
	"github.com/gatehouselabs/gatehouse/middleware"
)

// Handler holds the HTTP handlers for the authentication surface.
type Handler struct {
	auth *gatehouse.Engine
	log  logging.Logger
}

// NewHandler creates a Handler over the given engine.
func NewHandler(auth *gatehouse.Engine, log logging.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

// Routes assembles the router: public routes first, then the guarded group. Route
// publicness is decided here, per route, not by handler metadata.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.health)
	r.Post("/auth/sign-up", h.signUp)
	r.Post("/auth/sign-in", h.signIn)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Guard(h.auth))
		protected.Post("/auth/sign-out", h.signOut)
		protected.Get("/users/me", h.me)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.SignUp(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, gatehouse.ErrUserAlreadyExists) {
			h.writeError(w, http.StatusConflict, "user already exists")
			return
		}
		h.log.Error(r.Context(), "sign up failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gatehouse.ErrInvalidCredentials) {
			h.writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		h.log.Error(r.Context(), "sign in failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, signInResponse{AccessToken: token})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.auth.SignOut(r.Context(), identity.UserID); err != nil {
		h.log.Error(r.Context(), "sign out failed", "user_id", identity.UserID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.auth.UserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, gatehouse.ErrUserNotFound) {
			h.writeError(w, http.StatusBadRequest, "user not found")
			return
		}
		h.log.Error(r.Context(), "profile lookup failed", "user_id", identity.UserID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error(context.Background(), "encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Message: message})
}
