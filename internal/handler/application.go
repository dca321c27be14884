package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/email"
	"github.com/mtcnamibia/careers/internal/feed"
	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

type ApplicationHandler struct {
	applicationStore *store.ApplicationStore
	jobStore         *store.JobStore
	applicantStore   *store.ApplicantStore
	emailLogStore    *store.EmailLogStore
	emailService     *email.Service
	hub              *feed.Hub
	logger           *slog.Logger
}

func NewApplicationHandler(
	as *store.ApplicationStore,
	js *store.JobStore,
	aps *store.ApplicantStore,
	els *store.EmailLogStore,
	es *email.Service,
	hub *feed.Hub,
	logger *slog.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationStore: as,
		jobStore:         js,
		applicantStore:   aps,
		emailLogStore:    els,
		emailService:     es,
		hub:              hub,
		logger:           logger,
	}
}

type applicationRequest struct {
	JobID       int64   `json:"job_id"`
	Email       string  `json:"email"`
	CoverLetter *string `json:"cover_letter"`
}

// Create submits a new application. The applicant is identified by
// email; the apply form upserts the profile first via POST /api/applicants.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}

	job, err := h.jobStore.GetByID(req.JobID)
	if err != nil {
		h.logger.Error("get job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if !job.AcceptingApplications(time.Now()) {
		writeError(w, http.StatusBadRequest, "this position is no longer accepting applications")
		return
	}

	applicant, err := h.applicantStore.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("get applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}
	if applicant == nil {
		writeError(w, http.StatusBadRequest, "applicant profile not found; submit your details first")
		return
	}

	exists, err := h.applicationStore.Exists(job.ID, applicant.ID)
	if err != nil {
		h.logger.Error("check duplicate application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "you have already applied for this position")
		return
	}

	app, err := h.applicationStore.Create(job.ID, applicant.ID, req.CoverLetter)
	if err != nil {
		h.logger.Error("create application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}

	// Confirmation email failure must not fail the submission.
	if err := h.emailService.SendApplicationReceived(r.Context(), app.ID, applicant.Email, applicant.DisplayName(), job.Title); err != nil {
		h.logger.Error("send application confirmation", "error", err, "application_id", app.ID)
	}

	detail, err := h.applicationStore.GetDetailByID(app.ID)
	if err != nil || detail == nil {
		h.logger.Error("load application detail", "error", err)
		writeJSON(w, http.StatusCreated, app)
		return
	}

	h.hub.Broadcast(feed.ApplicationSubmitted(detail))
	writeJSON(w, http.StatusCreated, detail)
}

// List returns all applications with job and applicant details. HR only
// (enforced by middleware).
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.applicationStore.ListDetails()
	if err != nil {
		h.logger.Error("list applications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if details == nil {
		details = []model.ApplicationDetail{}
	}
	writeJSON(w, http.StatusOK, details)
}

// Get returns one application with details and its email history.
// Visible to HR and to the owning applicant.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	detail, err := h.applicationStore.GetDetailByID(id)
	if err != nil {
		h.logger.Error("get application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}

	if !auth.IsHR(r.Context()) && auth.UserID(r.Context()) != detail.ApplicantID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	logs, err := h.emailLogStore.ListByApplication(id)
	if err != nil {
		h.logger.Error("list application emails", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if logs == nil {
		logs = []model.EmailLog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"application": detail,
		"email_logs":  logs,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application through the pipeline and notifies
// the applicant. HR only (enforced by middleware).
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !model.ValidApplicationStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	existing, err := h.applicationStore.GetByID(id)
	if err != nil {
		h.logger.Error("get application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}

	if _, err := h.applicationStore.UpdateStatus(id, req.Status); err != nil {
		h.logger.Error("update application status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	detail, err := h.applicationStore.GetDetailByID(id)
	if err != nil || detail == nil {
		h.logger.Error("load application detail", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	// Status notification failure must not fail the update.
	if err := h.emailService.SendStatusUpdate(r.Context(), detail.ID, detail.Applicant.Email,
		detail.Applicant.DisplayName(), detail.Job.Title, detail.Status); err != nil {
		h.logger.Error("send status email", "error", err, "application_id", detail.ID)
	}

	h.hub.Broadcast(feed.ApplicationStatusChanged(detail))
	writeJSON(w, http.StatusOK, detail)
}

// Delete withdraws or removes an application. HR can delete any;
// applicants only their own while still PENDING.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	app, err := h.applicationStore.GetByID(id)
	if err != nil {
		h.logger.Error("get application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete application")
		return
	}
	if app == nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}

	if !auth.IsHR(r.Context()) {
		if auth.UserID(r.Context()) != app.ApplicantID {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		if app.Status != model.ApplicationPending {
			writeError(w, http.StatusBadRequest, "only pending applications can be withdrawn")
			return
		}
	}

	if err := h.applicationStore.Delete(id); err != nil {
		h.logger.Error("delete application", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete application")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}
