package notificationhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/notifications"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Notifications *notifications.Service
	Audit         *audit.Service
}

func NewHandler(notificationSvc *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Notifications: notificationSvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Get("/notifications", h.HandleList)
		r.Get("/notifications/counts", h.HandleCounts)
		r.Post("/notifications/{id}/read", h.HandleMarkRead)
		r.Post("/notifications/read-all", h.HandleMarkAllRead)
	})
}

// HandleList supports the notification center's filter chips
// (?filter=all|unread|approvals|alert|message) and search box (?q=).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	list, err := h.Notifications.List(r.Context(), user.UID, r.URL.Query().Get("filter"), r.URL.Query().Get("q"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	counts, err := h.Notifications.CountsFor(r.Context(), user.UID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, counts, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	if err := h.Notifications.MarkRead(r.Context(), user.UID, chi.URLParam(r, "id")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "read"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	changed, err := h.Notifications.MarkAllRead(r.Context(), user.UID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	if changed > 0 {
		h.Audit.Record(r.Context(), user.UID, user.Email, audit.ActionNotificationsReadAll, "", "")
	}
	api.Success(w, map[string]int{"updated": changed}, requestctx.GetRequestID(r.Context()))
}
