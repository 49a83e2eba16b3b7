package employeehandler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/employees"
	"skillsaudit/internal/platform/blobstore"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/shared"
)

// --- skills ---

func (h *Handler) HandleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.Employees.ListSkills(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, skills, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGetSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := h.Employees.GetSkill(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, skill, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleAddSkill(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.Skill
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Range("proficiency", payload.Proficiency, 0, 100, "must be between 0 and 100")
	if v.Reject(w, requestID) {
		return
	}

	skill, err := h.Employees.AddSkill(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Created(w, skill, requestID)
}

func (h *Handler) HandleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.SkillUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if payload.Proficiency != nil {
		v.Range("proficiency", *payload.Proficiency, 0, 100, "must be between 0 and 100")
	}
	if v.Reject(w, requestID) {
		return
	}

	skill, err := h.Employees.UpdateSkill(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, skill, requestID)
}

func (h *Handler) HandleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.DeleteSkill(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

// --- qualifications ---

func (h *Handler) HandleListQualifications(w http.ResponseWriter, r *http.Request) {
	quals, err := h.Employees.ListQualifications(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, quals, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGetQualification(w http.ResponseWriter, r *http.Request) {
	q, err := h.Employees.GetQualification(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, q, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleAddQualification(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.Qualification
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, requestID) {
		return
	}

	q, err := h.Employees.AddQualification(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Created(w, q, requestID)
}

func (h *Handler) HandleUpdateQualification(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.QualificationUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	q, err := h.Employees.UpdateQualification(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, q, requestID)
}

func (h *Handler) HandleVerifyQualification(w http.ResponseWriter, r *http.Request) {
	q, err := h.Employees.VerifyQualification(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, q, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleRejectQualification(w http.ResponseWriter, r *http.Request) {
	q, err := h.Employees.RejectQualification(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, q, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDeleteQualification(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.DeleteQualification(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

// HandleQualificationDocument attaches a supporting document to a
// qualification; resubmission sends it back to pending.
func (h *Handler) HandleQualificationDocument(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	uid := chi.URLParam(r, "uid")
	qualificationID := chi.URLParam(r, "id")

	file, header, ok := h.acceptUpload(w, r, h.MaxDocumentBytes, []string{".pdf", ".png", ".jpg", ".jpeg"})
	if !ok {
		return
	}
	defer file.Close()

	existing, err := h.Employees.Store.GetQualification(r.Context(), uid, qualificationID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	key, token := blobstore.QualificationDocumentKey(uid, header.Filename)
	if _, err := h.Blobs.Upload(r.Context(), file, key, blobstore.ContentTypeFor(header.Filename)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "could not store the document", requestID)
		return
	}

	documentURL := blobstore.DownloadURL(h.StorageBaseURL, h.StorageBucket, key, token)
	q, err := h.Employees.UpdateQualification(r.Context(), actorFrom(r), uid, qualificationID, employees.QualificationUpdate{DocumentURL: &documentURL})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if existing.DocumentURL != "" {
		if oldKey, err := blobstore.ObjectKeyFromURL(existing.DocumentURL); err == nil {
			_ = h.Blobs.Delete(r.Context(), oldKey)
		}
	}

	api.Success(w, q, requestID)
}

// HandleViewQualificationDocument streams the stored document so
// reviewers can inspect it without a public object URL.
func (h *Handler) HandleViewQualificationDocument(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	q, err := h.Employees.Store.GetQualification(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if q.DocumentURL == "" {
		api.Fail(w, http.StatusNotFound, "not_found", "no document attached", requestID)
		return
	}

	key, err := blobstore.ObjectKeyFromURL(q.DocumentURL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "stored document reference is invalid", requestID)
		return
	}

	body, err := h.Blobs.Download(r.Context(), key)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "document is missing from storage", requestID)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", blobstore.ContentTypeFor(key))
	_, _ = io.Copy(w, body)
}

// --- personal training plans ---

func (h *Handler) HandleListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.Employees.ListTrainings(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, trainings, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGetTraining(w http.ResponseWriter, r *http.Request) {
	t, err := h.Employees.GetTraining(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, t, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleAddTraining(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.Training
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	t, err := h.Employees.AddTraining(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Created(w, t, requestID)
}

func (h *Handler) HandleUpdateTraining(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.TrainingUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if payload.StartDate != nil {
		v.Date("startDate", *payload.StartDate)
	}
	if payload.EndDate != nil {
		v.Date("endDate", *payload.EndDate)
	}
	if v.Reject(w, requestID) {
		return
	}

	t, err := h.Employees.UpdateTraining(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, t, requestID)
}

func (h *Handler) HandleApproveTraining(w http.ResponseWriter, r *http.Request) {
	t, err := h.Employees.ApproveTraining(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, t, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleRejectTraining(w http.ResponseWriter, r *http.Request) {
	t, err := h.Employees.RejectTraining(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, t, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDeleteTraining(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.DeleteTraining(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

// --- pending queues ---

func (h *Handler) HandlePendingQualifications(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Employees.ListPendingQualifications(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, pending, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandlePendingTrainings(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Employees.ListPendingTrainings(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, pending, requestctx.GetRequestID(r.Context()))
}
