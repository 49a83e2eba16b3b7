package reporthandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/reports"
	"skillsaudit/internal/platform/blobstore"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
	Blobs   blobstore.FileStorage
}

func NewHandler(reportSvc *reports.Service, blobs blobstore.FileStorage) *Handler {
	return &Handler{Reports: reportSvc, Blobs: blobs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/reports", h.HandleList)
		r.Post("/reports", h.HandleGenerate)
		r.Get("/reports/{id}/download", h.HandleDownload)
		r.Delete("/reports/{id}", h.HandleDelete)
	})
}

func actorFrom(r *http.Request) audit.Actor {
	user, _ := middleware.GetUser(r.Context())
	return audit.Actor{UID: user.UID, Name: user.Email, Role: user.Role}
}

type generateRequest struct {
	Title  string         `json:"title"`
	Params reports.Params `json:"params"`
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	report, err := h.Reports.Generate(r.Context(), actorFrom(r), payload.Title, payload.Params)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "generate_failed", "could not generate the report", requestID)
		return
	}
	api.Created(w, report, requestID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reports.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	report, err := h.Reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "report not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
		return
	}

	body, err := h.Blobs.Download(r.Context(), report.ObjectKey)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "report file is missing from storage", requestID)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	_, _ = io.Copy(w, body)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	if err := h.Reports.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "report not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
