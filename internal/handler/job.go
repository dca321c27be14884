package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/feed"
	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

type JobHandler struct {
	jobStore *store.JobStore
	hub      *feed.Hub
	logger   *slog.Logger
}

func NewJobHandler(js *store.JobStore, hub *feed.Hub, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobStore: js, hub: hub, logger: logger}
}

type jobRequest struct {
	Title        string     `json:"title"`
	Department   string     `json:"department"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Benefits     *string    `json:"benefits"`
	SalaryRange  *string    `json:"salary_range"`
	Status       string     `json:"status"`
	ClosesAt     *time.Time `json:"closes_at"`
}

func (req *jobRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	req.Department = strings.TrimSpace(req.Department)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.Department == "" || req.Location == "" {
		return "title, department, and location are required"
	}
	if req.Description == "" || req.Requirements == "" {
		return "description and requirements are required"
	}
	if !model.ValidJobType(req.Type) {
		return "invalid job type"
	}
	if req.Status == "" {
		req.Status = model.JobStatusDraft
	}
	if !model.ValidJobStatus(req.Status) {
		return "invalid job status"
	}
	return ""
}

func (req *jobRequest) params() store.JobParams {
	return store.JobParams{
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		SalaryRange:  req.SalaryRange,
		Status:       req.Status,
		ClosesAt:     req.ClosesAt,
	}
}

// List returns published jobs for the public, and all jobs with
// application counts for HR sessions.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if auth.IsHR(r.Context()) {
		jobs, err := h.jobStore.ListWithCounts()
		if err != nil {
			h.logger.Error("list jobs", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list jobs")
			return
		}
		if jobs == nil {
			jobs = []model.JobWithCount{}
		}
		writeJSON(w, http.StatusOK, jobs)
		return
	}

	jobs, err := h.jobStore.ListPublished()
	if err != nil {
		h.logger.Error("list published jobs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Get returns one job. Unpublished jobs are only visible to HR.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	job, err := h.jobStore.GetByID(id)
	if err != nil {
		h.logger.Error("get job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil || (job.Status != model.JobStatusPublished && !auth.IsHR(r.Context())) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	job, err := h.jobStore.Create(req.params())
	if err != nil {
		h.logger.Error("create job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	if ev, ok := feed.JobStatusChanged(job); ok {
		h.hub.Broadcast(ev)
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.jobStore.GetByID(id)
	if err != nil {
		h.logger.Error("get job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	job, err := h.jobStore.Update(id, req.params())
	if err != nil {
		h.logger.Error("update job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update job")
		return
	}

	if job.Status != existing.Status {
		if ev, ok := feed.JobStatusChanged(job); ok {
			h.hub.Broadcast(ev)
		}
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.jobStore.GetByID(id)
	if err != nil {
		h.logger.Error("get job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	if err := h.jobStore.Delete(id); err != nil {
		h.logger.Error("delete job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}

	// A deleted posting reads the same as a closed one on the feed.
	if existing.Status == model.JobStatusPublished {
		existing.Status = model.JobStatusClosed
		if ev, ok := feed.JobStatusChanged(existing); ok {
			h.hub.Broadcast(ev)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}
