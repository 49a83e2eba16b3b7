package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/platform/identity"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Auth   *auth.Service
	Secure bool
}

func NewHandler(authSvc *auth.Service, secureCookies bool) *Handler {
	return &Handler{Auth: authSvc, Secure: secureCookies}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Post("/auth/request-reset", h.HandleRequestReset)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Post("/auth/change-password", h.HandleChangePassword)
		r.Get("/auth/me", h.HandleMe)
	})
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", requestID)
		return
	}

	result, err := h.Auth.Login(r.Context(), payload.Email, payload.Password, payload.RememberMe)
	if err != nil {
		h.failLogin(w, err, requestID)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	api.Success(w, result, requestID)
}

func (h *Handler) failLogin(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, auth.ErrAccessDenied) {
		api.Fail(w, http.StatusForbidden, "access_denied", "Access denied", requestID)
		return
	}

	var gwErr *identity.GatewayError
	if errors.As(err, &gwErr) {
		status := http.StatusUnauthorized
		if !identity.IsInvalidCredentials(err) {
			status = http.StatusBadGateway
		}
		api.Fail(w, status, "login_failed", gwErr.Message, requestID)
		return
	}

	api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	api.Success(w, map[string]string{"status": "logged out"}, requestctx.GetRequestID(r.Context()))
}

type resetRequest struct {
	Email string `json:"email"`
}

func (h *Handler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload resetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email is required", requestID)
		return
	}

	// The response does not reveal whether the email has an account.
	if err := h.Auth.SendPasswordReset(r.Context(), payload.Email); err != nil {
		var gwErr *identity.GatewayError
		if !errors.As(err, &gwErr) {
			api.Fail(w, http.StatusBadGateway, "reset_failed", "could not send reset email", requestID)
			return
		}
	}
	api.Success(w, map[string]string{"status": "reset email sent if the account exists"}, requestID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.CurrentPassword == "" || len(payload.NewPassword) < 8 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "current password and a new password of at least 8 characters are required", requestID)
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), user.Email, payload.CurrentPassword, payload.NewPassword); err != nil {
		if identity.IsInvalidCredentials(err) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", identity.InvalidCredentialsMessage, requestID)
			return
		}
		api.Fail(w, http.StatusBadGateway, "change_failed", "could not change password", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "password changed"}, requestID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, map[string]string{
		"uid":   user.UID,
		"email": user.Email,
		"role":  user.Role,
	}, requestctx.GetRequestID(r.Context()))
}
