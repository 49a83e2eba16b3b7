package supporthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/support"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Support *support.Service
}

func NewHandler(supportSvc *support.Service) *Handler {
	return &Handler{Support: supportSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Post("/support", h.HandleSend)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/support", h.HandleList)
	})
}

type sendRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload sendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	actor := audit.Actor{UID: user.UID, Name: user.Email, Role: user.Role}
	sent, err := h.Support.Send(r.Context(), actor, payload.Email, payload.Subject, payload.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		return
	}
	api.Created(w, sent, requestID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Support.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}
