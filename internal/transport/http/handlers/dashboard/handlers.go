package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/dashboard"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Dashboard *dashboard.Service
}

func NewHandler(dashboardSvc *dashboard.Service) *Handler {
	return &Handler{Dashboard: dashboardSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/dashboard/admin", h.HandleAdmin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Get("/dashboard/me", h.HandleMe)
	})
}

func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	board, err := h.Dashboard.Admin(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, board, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	board, err := h.Dashboard.Employee(r.Context(), user.UID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, board, requestctx.GetRequestID(r.Context()))
}
