package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/resume"
	"github.com/mtcnamibia/careers/internal/store"
)

type ApplicantHandler struct {
	applicantStore   *store.ApplicantStore
	applicationStore *store.ApplicationStore
	resumes          resume.Storage
	logger           *slog.Logger
}

func NewApplicantHandler(as *store.ApplicantStore, aps *store.ApplicationStore, rs resume.Storage, logger *slog.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		applicantStore:   as,
		applicationStore: aps,
		resumes:          rs,
		logger:           logger,
	}
}

type applicantRequest struct {
	Email           string  `json:"email"`
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	LinkedinURL     *string `json:"linkedin_url"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years"`
	CurrentPosition *string `json:"current_position"`
	Gender          *string `json:"gender"`
	Race            *string `json:"race"`
}

func (req *applicantRequest) params() store.ProfileParams {
	return store.ProfileParams{
		Name:            req.Name,
		Phone:           req.Phone,
		LinkedinURL:     req.LinkedinURL,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		CurrentPosition: req.CurrentPosition,
		Gender:          req.Gender,
		Race:            req.Race,
	}
}

// Upsert creates or updates an applicant profile by email. Public: the
// apply form calls this before submitting the application itself.
func (h *ApplicantHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req applicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}

	applicant, err := h.applicantStore.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("get applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	if applicant == nil {
		applicant, err = h.applicantStore.CreateBare(req.Email)
		if err != nil {
			h.logger.Error("create applicant", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save profile")
			return
		}
	}

	updated, err := h.applicantStore.UpdateProfile(applicant.ID, req.params())
	if err != nil {
		h.logger.Error("update applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Me returns the authenticated applicant's profile.
func (h *ApplicantHandler) Me(w http.ResponseWriter, r *http.Request) {
	applicant, err := h.applicantStore.GetByID(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if applicant == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, applicant)
}

// UpdateMe updates the authenticated applicant's profile.
func (h *ApplicantHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req applicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	applicant, err := h.applicantStore.UpdateProfile(auth.UserID(r.Context()), req.params())
	if err != nil {
		h.logger.Error("update applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, applicant)
}

// MyApplications lists the authenticated applicant's applications with
// job details.
func (h *ApplicantHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	details, err := h.applicationStore.ListDetailsByApplicant(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list applicant applications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if details == nil {
		details = []model.ApplicationDetail{}
	}
	writeJSON(w, http.StatusOK, details)
}

// UploadResume stores a resume (multipart field "resume") and records its
// key on the profile. PDF or Word, 5MB max.
func (h *ApplicantHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, resume.MaxSize)
	if err := r.ParseMultipartForm(resume.MaxSize); err != nil {
		writeError(w, http.StatusBadRequest, "resume must be 5MB or smaller")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !resume.AllowedType(contentType) {
		writeError(w, http.StatusBadRequest, "resume must be a PDF or Word document")
		return
	}

	applicantID := auth.UserID(r.Context())
	key := resume.NewKey(applicantID, contentType)
	if err := h.resumes.Put(r.Context(), key, contentType, file); err != nil {
		h.logger.Error("store resume", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	if err := h.applicantStore.SetResumeKey(applicantID, key); err != nil {
		h.logger.Error("record resume key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"resume_key": key})
}

// DownloadResume streams the authenticated applicant's stored resume.
func (h *ApplicantHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	applicant, err := h.applicantStore.GetByID(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get applicant", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if applicant == nil || applicant.ResumeKey == nil {
		writeError(w, http.StatusNotFound, "no resume on file")
		return
	}

	body, contentType, err := h.resumes.Get(r.Context(), *applicant.ResumeKey)
	if err == resume.ErrNotFound {
		writeError(w, http.StatusNotFound, "no resume on file")
		return
	}
	if err != nil {
		h.logger.Error("fetch resume", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, body)
}
