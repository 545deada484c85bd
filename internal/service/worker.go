package service

import (
	"context"
	"strings"

	"github.com/trustworkers/api/internal/model"
)

// WorkerService serves the worker directory
type WorkerService struct {
	userRepo UserRepository
}

// NewWorkerService creates a new worker service
func NewWorkerService(userRepo UserRepository) *WorkerService {
	return &WorkerService{userRepo: userRepo}
}

// List returns all workers, newest first
func (s *WorkerService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListWorkers(ctx)
}

// Search returns workers whose name, category, province or experience contain q
func (s *WorkerService) Search(ctx context.Context, q string) ([]*model.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}
	return s.userRepo.SearchWorkers(ctx, q)
}

// ByCategory returns workers in a job category
func (s *WorkerService) ByCategory(ctx context.Context, category string) ([]*model.User, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	return s.userRepo.WorkersByCategory(ctx, category)
}
