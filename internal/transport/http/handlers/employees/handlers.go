package employeehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/employees"
	"skillsaudit/internal/domain/reports"
	"skillsaudit/internal/platform/blobstore"
	"skillsaudit/internal/platform/requestctx"
	"skillsaudit/internal/transport/http/api"
	"skillsaudit/internal/transport/http/middleware"
	"skillsaudit/internal/transport/http/shared"
)

type Handler struct {
	Employees      *employees.Service
	Reports        *reports.Service
	Blobs          blobstore.FileStorage
	StorageBaseURL string
	StorageBucket  string
	// MaxUploadBytes caps profile pictures; qualification documents
	// get the larger MaxDocumentBytes cap.
	MaxUploadBytes   int64
	MaxDocumentBytes int64
}

func NewHandler(employeeSvc *employees.Service, reportSvc *reports.Service, blobs blobstore.FileStorage, storageBaseURL, storageBucket string, maxUploadBytes, maxDocumentBytes int64) *Handler {
	return &Handler{
		Employees:        employeeSvc,
		Reports:          reportSvc,
		Blobs:            blobs,
		StorageBaseURL:   storageBaseURL,
		StorageBucket:    storageBucket,
		MaxUploadBytes:   maxUploadBytes,
		MaxDocumentBytes: maxDocumentBytes,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/employees", h.HandleList)
		r.Post("/employees", h.HandleCreate)
		r.Delete("/employees/{uid}", h.HandleDelete)
		r.Get("/qualifications/pending", h.HandlePendingQualifications)
		r.Get("/trainings/pending", h.HandlePendingTrainings)
		r.Post("/employees/{uid}/qualifications/{id}/verify", h.HandleVerifyQualification)
		r.Post("/employees/{uid}/qualifications/{id}/reject", h.HandleRejectQualification)
		r.Post("/employees/{uid}/trainings/{id}/approve", h.HandleApproveTraining)
		r.Post("/employees/{uid}/trainings/{id}/reject", h.HandleRejectTraining)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleEmployee))
		r.Get("/employees/{uid}", h.selfOrAdmin(h.HandleGet))
		r.Put("/employees/{uid}", h.selfOrAdmin(h.HandleUpdateProfile))
		r.Get("/employees/{uid}/cv", h.selfOrAdmin(h.HandleCV))
		r.Get("/employees/{uid}/profile-picture", h.selfOrAdmin(h.HandleFetchProfilePicture))
		r.Post("/employees/{uid}/profile-picture", h.selfOrAdmin(h.HandleProfilePicture))

		r.Get("/employees/{uid}/skills", h.selfOrAdmin(h.HandleListSkills))
		r.Post("/employees/{uid}/skills", h.selfOrAdmin(h.HandleAddSkill))
		r.Get("/employees/{uid}/skills/{id}", h.selfOrAdmin(h.HandleGetSkill))
		r.Put("/employees/{uid}/skills/{id}", h.selfOrAdmin(h.HandleUpdateSkill))
		r.Delete("/employees/{uid}/skills/{id}", h.selfOrAdmin(h.HandleDeleteSkill))

		r.Get("/employees/{uid}/qualifications", h.selfOrAdmin(h.HandleListQualifications))
		r.Post("/employees/{uid}/qualifications", h.selfOrAdmin(h.HandleAddQualification))
		r.Get("/employees/{uid}/qualifications/{id}", h.selfOrAdmin(h.HandleGetQualification))
		r.Put("/employees/{uid}/qualifications/{id}", h.selfOrAdmin(h.HandleUpdateQualification))
		r.Delete("/employees/{uid}/qualifications/{id}", h.selfOrAdmin(h.HandleDeleteQualification))
		r.Post("/employees/{uid}/qualifications/{id}/document", h.selfOrAdmin(h.HandleQualificationDocument))
		r.Get("/employees/{uid}/qualifications/{id}/document", h.selfOrAdmin(h.HandleViewQualificationDocument))

		r.Get("/employees/{uid}/trainings", h.selfOrAdmin(h.HandleListTrainings))
		r.Post("/employees/{uid}/trainings", h.selfOrAdmin(h.HandleAddTraining))
		r.Get("/employees/{uid}/trainings/{id}", h.selfOrAdmin(h.HandleGetTraining))
		r.Put("/employees/{uid}/trainings/{id}", h.selfOrAdmin(h.HandleUpdateTraining))
		r.Delete("/employees/{uid}/trainings/{id}", h.selfOrAdmin(h.HandleDeleteTraining))
	})
}

// selfOrAdmin lets admins through for any employee and employees
// through for their own record only.
func (h *Handler) selfOrAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetUser(r.Context())
		if user.Role != auth.RoleAdmin && user.UID != chi.URLParam(r, "uid") {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
			return
		}
		next(w, r)
	}
}

func actorFrom(r *http.Request) audit.Actor {
	user, _ := middleware.GetUser(r.Context())
	return audit.Actor{UID: user.UID, Name: user.Email, Role: user.Role}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.NewEmployee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Employees.Create(r.Context(), actorFrom(r), payload)
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "create_failed", "could not create the employee account", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Employees.Get(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, employee, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload employees.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Employees.UpdateProfile(r.Context(), actorFrom(r), chi.URLParam(r, "uid"), payload)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "uid")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCV(w http.ResponseWriter, r *http.Request) {
	content, fileName, err := h.Reports.GenerateCV(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	_, _ = w.Write(content)
}

// defaultAvatarPath is served when a profile has no picture yet.
const defaultAvatarPath = "/static/default-avatar.png"

// HandleFetchProfilePicture redirects to the stored picture URL, or to
// the default avatar when none has been uploaded.
func (h *Handler) HandleFetchProfilePicture(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Employees.Get(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	target := employee.ProfilePictureURL
	if target == "" {
		target = defaultAvatarPath
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleProfilePicture accepts a multipart image upload, replaces any
// previous picture and stores the tokenized URL on the profile.
func (h *Handler) HandleProfilePicture(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	uid := chi.URLParam(r, "uid")

	file, header, ok := h.acceptUpload(w, r, h.MaxUploadBytes, []string{".png", ".jpg", ".jpeg", ".gif", ".webp"})
	if !ok {
		return
	}
	defer file.Close()

	current, err := h.Employees.Get(r.Context(), uid)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	key, token := blobstore.ProfilePictureKey(uid, header.Filename)
	if _, err := h.Blobs.Upload(r.Context(), file, key, blobstore.ContentTypeFor(header.Filename)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "could not store the picture", requestID)
		return
	}

	pictureURL := blobstore.DownloadURL(h.StorageBaseURL, h.StorageBucket, key, token)
	updated, err := h.Employees.UpdateProfile(r.Context(), actorFrom(r), uid, employees.ProfileUpdate{ProfilePictureURL: &pictureURL})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if current.ProfilePictureURL != "" {
		if oldKey, err := blobstore.ObjectKeyFromURL(current.ProfilePictureURL); err == nil {
			_ = h.Blobs.Delete(r.Context(), oldKey)
		}
	}

	api.Success(w, updated, requestID)
}

// acceptUpload parses the multipart form within the given size cap
// and checks the extension.
func (h *Handler) acceptUpload(w http.ResponseWriter, r *http.Request, maxBytes int64, allowedExts []string) (io.ReadCloser, *FileHeader, bool) {
	requestID := requestctx.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		api.Fail(w, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Sprintf("file exceeds the %d byte limit", maxBytes), requestID)
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a file field is required", requestID)
		return nil, nil, false
	}

	ext := strings.ToLower(extOf(header.Filename))
	allowed := false
	for _, candidate := range allowedExts {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		file.Close()
		api.Fail(w, http.StatusBadRequest, "unsupported_type",
			fmt.Sprintf("file type %s is not accepted", ext), requestID)
		return nil, nil, false
	}

	return file, &FileHeader{Filename: header.Filename, Size: header.Size}, true
}

type FileHeader struct {
	Filename string
	Size     int64
}

func extOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return fileName[idx:]
}
