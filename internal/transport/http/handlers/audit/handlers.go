package audithandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditSvc *audit.Service) *Handler {
	return &Handler{Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/audit", h.HandleRecent)
	})
}

func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.Audit.Recent(r.Context(), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, requestctx.GetRequestID(r.Context()))
}
