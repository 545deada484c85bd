package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/model"
)

const jobSelect = `SELECT *, posted_by.name AS poster_name FROM `

// JobRepository handles job post data access
type JobRepository struct {
	db database.Database
}

// NewJobRepository creates a new job repository
func NewJobRepository(db database.Database) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts an active job post with the next integer id and fills in
// the stored fields, including the poster's name.
func (r *JobRepository) Create(ctx context.Context, job *model.JobPost) error {
	query := database.Atomic(
		`LET $next = (UPSERT counter:job_post SET value += 1 RETURN VALUE value)[0]`,
		`CREATE type::thing('job_post', $next) CONTENT {
			title: $title,
			job_type: $job_type,
			category: $category,
			district: $district,
			description: $description,
			contact_phone: $contact_phone,
			posted_by: type::thing('user', $posted_by),
			is_active: true,
			created_at: time::now(),
			updated_at: time::now()
		} RETURN AFTER`,
		jobSelect+`type::thing('job_post', $next)`,
	)

	vars := map[string]interface{}{
		"title":         job.Title,
		"job_type":      job.JobType,
		"category":      job.Category,
		"district":      job.District,
		"description":   job.Description,
		"contact_phone": job.ContactPhone,
		"posted_by":     job.PostedBy,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	rows := toRows(database.LastResult(results))
	if len(rows) == 0 {
		return errors.New("create job post: no record returned")
	}
	*job = *parseJob(rows[0])
	return nil
}

// GetByID retrieves a job post, active or not. Returns nil, nil when absent.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*model.JobPost, error) {
	result, err := r.db.QueryOne(ctx, jobSelect+`type::thing('job_post', $id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseJob(data), nil
}

// ListActive returns active job posts, newest first
func (r *JobRepository) ListActive(ctx context.Context) ([]*model.JobPost, error) {
	return r.queryMany(ctx, jobSelect+`job_post WHERE is_active = true ORDER BY created_at DESC`, nil)
}

// SearchActive matches q case-insensitively against title, description,
// category and district of active posts
func (r *JobRepository) SearchActive(ctx context.Context, q string) ([]*model.JobPost, error) {
	query := jobSelect + `job_post
		WHERE is_active = true AND (
			string::contains(string::lowercase(title), $q) OR
			string::contains(string::lowercase(description), $q) OR
			string::contains(string::lowercase(category), $q) OR
			string::contains(string::lowercase(district), $q)
		)
		ORDER BY created_at DESC`
	return r.queryMany(ctx, query, map[string]interface{}{"q": strings.ToLower(q)})
}

// ListActiveByCategory returns active posts whose category equals category
func (r *JobRepository) ListActiveByCategory(ctx context.Context, category string) ([]*model.JobPost, error) {
	query := jobSelect + `job_post WHERE is_active = true AND category = $category ORDER BY created_at DESC`
	return r.queryMany(ctx, query, map[string]interface{}{"category": category})
}

// ListByPoster returns every post by a user, including deactivated ones
func (r *JobRepository) ListByPoster(ctx context.Context, userID int64) ([]*model.JobPost, error) {
	query := jobSelect + `job_post WHERE posted_by = type::thing('user', $user_id) ORDER BY created_at DESC`
	return r.queryMany(ctx, query, map[string]interface{}{"user_id": userID})
}

// Update merges the given column values into a post
func (r *JobRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	query := database.Atomic(
		`UPDATE type::thing('job_post', $id) MERGE $patch`,
		`UPDATE type::thing('job_post', $id) SET updated_at = time::now()`,
	)
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id, "patch": fields})
}

// Deactivate soft-deletes a post
func (r *JobRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE type::thing('job_post', $id) SET is_active = false, updated_at = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func (r *JobRepository) queryMany(ctx context.Context, query string, vars map[string]interface{}) ([]*model.JobPost, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	rows := extractQueryResults(results)
	jobs := make([]*model.JobPost, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, parseJob(row))
	}
	return jobs, nil
}

func parseJob(data map[string]interface{}) *model.JobPost {
	return &model.JobPost{
		ID:           extractRecordNumber(data["id"]),
		Title:        getString(data, "title"),
		JobType:      getString(data, "job_type"),
		Category:     getString(data, "category"),
		District:     getString(data, "district"),
		Description:  getString(data, "description"),
		ContactPhone: getString(data, "contact_phone"),
		PostedBy:     extractRecordNumber(data["posted_by"]),
		PosterName:   getString(data, "poster_name"),
		IsActive:     getBool(data, "is_active"),
		CreatedAt:    getTime(data, "created_at"),
		UpdatedAt:    getTime(data, "updated_at"),
	}
}
