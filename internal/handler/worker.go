package handler

import (
	"context"
	"net/http"

	"github.com/trustworkers/api/internal/model"
)

// WorkerService is the subset of service.WorkerService used by WorkerHandler
type WorkerService interface {
	List(ctx context.Context) ([]*model.User, error)
	Search(ctx context.Context, q string) ([]*model.User, error)
	ByCategory(ctx context.Context, category string) ([]*model.User, error)
}

// WorkerHandler serves the worker directory
type WorkerHandler struct {
	workerService WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// List handles GET /v1/workers
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.List(r.Context())
	h.writeWorkers(w, r, "Workers retrieved successfully.", workers, err)
}

// Search handles GET /v1/workers/search?q=
func (h *WorkerHandler) Search(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.Search(r.Context(), r.URL.Query().Get("q"))
	h.writeWorkers(w, r, "Search completed.", workers, err)
}

// ByCategory handles GET /v1/workers/by-category?category=
func (h *WorkerHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.ByCategory(r.Context(), r.URL.Query().Get("category"))
	h.writeWorkers(w, r, "Workers retrieved successfully.", workers, err)
}

func (h *WorkerHandler) writeWorkers(w http.ResponseWriter, r *http.Request, message string, workers []*model.User, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, message, map[string]interface{}{"workers": orEmpty(workers)})
}
