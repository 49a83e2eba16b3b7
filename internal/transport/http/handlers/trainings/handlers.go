package traininghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/training"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
)

type Handler struct {
	Training *training.Service
}

func NewHandler(trainingSvc *training.Service) *Handler {
	return &Handler{Training: trainingSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/assigned-trainings", h.HandleList)
		r.Post("/assigned-trainings", h.HandleCreate)
		r.Get("/assigned-trainings/{id}", h.HandleGet)
		r.Put("/assigned-trainings/{id}", h.HandleUpdate)
		r.Delete("/assigned-trainings/{id}", h.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Get("/assigned-trainings/mine", h.HandleMine)
	})
}

func actorFrom(r *http.Request) audit.Actor {
	user, _ := middleware.GetUser(r.Context())
	return audit.Actor{UID: user.UID, Name: user.Email, Role: user.Role}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())
	if errors.Is(err, training.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "assigned training not found", requestID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Training.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Training.ListForEmployee(r.Context(), user.UID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.Training.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	api.Success(w, t, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload training.AssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	created, err := h.Training.Create(r.Context(), actorFrom(r), payload)
	if err != nil {
		if errors.Is(err, training.ErrNotFound) {
			h.writeError(w, r, err)
			return
		}
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload training.AssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Training.Update(r.Context(), actorFrom(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		if errors.Is(err, training.ErrNotFound) {
			h.writeError(w, r, err)
			return
		}
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Training.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}
