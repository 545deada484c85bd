package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/trustworkers/api/internal/middleware"
	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/internal/service"
)

// JobService is the subset of service.JobService used by JobHandler
type JobService interface {
	List(ctx context.Context) ([]*model.JobPost, error)
	Search(ctx context.Context, q string) ([]*model.JobPost, error)
	ByCategory(ctx context.Context, category string) ([]*model.JobPost, error)
	ByPoster(ctx context.Context, userID int64) ([]*model.JobPost, error)
	Create(ctx context.Context, posterID int64, req model.CreateJobRequest) (*model.JobPost, error)
	Update(ctx context.Context, userID, jobID int64, req model.UpdateJobRequest) (*model.JobPost, error)
	Delete(ctx context.Context, userID, jobID int64) error
}

// JobHandler handles job post endpoints
type JobHandler struct {
	jobService JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List handles GET /v1/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.List(r.Context())
	h.writeJobs(w, r, "Jobs retrieved successfully.", jobs, err)
}

// Search handles GET /v1/jobs/search?q=
func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.Search(r.Context(), r.URL.Query().Get("q"))
	h.writeJobs(w, r, "Search completed.", jobs, err)
}

// ByCategory handles GET /v1/jobs/by-category?category=
func (h *JobHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.ByCategory(r.Context(), r.URL.Query().Get("category"))
	h.writeJobs(w, r, "Jobs retrieved successfully.", jobs, err)
}

// Mine handles GET /v1/jobs/mine. An explicit user_id lists that user's
// posts; otherwise the caller's own.
func (h *JobHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeServiceError(w, r, service.ErrInvalidUserID)
			return
		}
		userID = id
	}

	jobs, err := h.jobService.ByPoster(r.Context(), userID)
	h.writeJobs(w, r, "User jobs retrieved successfully.", jobs, err)
}

// Create handles POST /v1/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("All fields are required."))
		return
	}

	job, err := h.jobService.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Job post created successfully.", map[string]interface{}{"job": job})
}

// Update handles PUT /v1/jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req model.UpdateJobRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("No fields to update."))
		return
	}

	job, err := h.jobService.Update(r.Context(), middleware.GetUserID(r.Context()), jobID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Job updated successfully.", map[string]interface{}{"job": job})
}

// Delete handles DELETE /v1/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.jobService.Delete(r.Context(), middleware.GetUserID(r.Context()), jobID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Job deleted successfully.", nil)
}

func (h *JobHandler) writeJobs(w http.ResponseWriter, r *http.Request, message string, jobs []*model.JobPost, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, message, map[string]interface{}{"jobs": orEmpty(jobs)})
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidJobID
	}
	return id, nil
}

// orEmpty makes nil slices encode as [] rather than null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
