package service

import (
	"context"
	"strings"

	"github.com/trustworkers/api/internal/model"
)

// JobRepository defines the interface for job post storage
type JobRepository interface {
	Create(ctx context.Context, job *model.JobPost) error
	GetByID(ctx context.Context, id int64) (*model.JobPost, error)
	ListActive(ctx context.Context) ([]*model.JobPost, error)
	SearchActive(ctx context.Context, q string) ([]*model.JobPost, error)
	ListActiveByCategory(ctx context.Context, category string) ([]*model.JobPost, error)
	ListByPoster(ctx context.Context, userID int64) ([]*model.JobPost, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id int64) error
}

// JobService handles job post operations
type JobService struct {
	jobRepo JobRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// List returns active posts, newest first
func (s *JobService) List(ctx context.Context) ([]*model.JobPost, error) {
	return s.jobRepo.ListActive(ctx)
}

// Search returns active posts matching q
func (s *JobService) Search(ctx context.Context, q string) ([]*model.JobPost, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}
	return s.jobRepo.SearchActive(ctx, q)
}

// ByCategory returns active posts in a category
func (s *JobService) ByCategory(ctx context.Context, category string) ([]*model.JobPost, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	return s.jobRepo.ListActiveByCategory(ctx, category)
}

// ByPoster returns every post by userID, including deactivated ones
func (s *JobService) ByPoster(ctx context.Context, userID int64) ([]*model.JobPost, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.jobRepo.ListByPoster(ctx, userID)
}

// Create posts a job on behalf of posterID
func (s *JobService) Create(ctx context.Context, posterID int64, req model.CreateJobRequest) (*model.JobPost, error) {
	job := &model.JobPost{
		Title:        strings.TrimSpace(req.Title),
		JobType:      strings.TrimSpace(req.JobType),
		Category:     strings.TrimSpace(req.Category),
		District:     strings.TrimSpace(req.District),
		Description:  strings.TrimSpace(req.Description),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		PostedBy:     posterID,
	}
	if job.Title == "" || job.JobType == "" || job.Category == "" ||
		job.District == "" || job.Description == "" || job.ContactPhone == "" {
		return nil, ErrJobFieldsRequired
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update changes the given fields of a post owned by userID
func (s *JobService) Update(ctx context.Context, userID, jobID int64, req model.UpdateJobRequest) (*model.JobPost, error) {
	if _, err := s.owned(ctx, userID, jobID); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.jobRepo.Update(ctx, jobID, req.Fields()); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Delete deactivates a post owned by userID
func (s *JobService) Delete(ctx context.Context, userID, jobID int64) error {
	if _, err := s.owned(ctx, userID, jobID); err != nil {
		return err
	}
	return s.jobRepo.Deactivate(ctx, jobID)
}

// owned loads a post and checks it belongs to userID. A missing post and a
// post owned by someone else produce the same error.
func (s *JobService) owned(ctx context.Context, userID, jobID int64) (*model.JobPost, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.PostedBy != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}
