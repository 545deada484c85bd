package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/model"
)

const userFields = `id, name, email, password, phone, user_type, job_category, experience, province, created_at, updated_at`

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user with the next integer id. The email must be unique;
// a clash returns database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := database.Atomic(
		`LET $next = (UPSERT counter:user SET value += 1 RETURN VALUE value)[0]`,
		`CREATE type::thing('user', $next) CONTENT {
			name: $name,
			email: $email,
			password: $password,
			phone: $phone,
			user_type: $user_type,
			job_category: IF $job_category IS NOT NULL THEN $job_category ELSE NONE END,
			experience: IF $experience IS NOT NULL THEN $experience ELSE NONE END,
			province: IF $province IS NOT NULL THEN $province ELSE NONE END,
			created_at: time::now(),
			updated_at: time::now()
		}`,
	)

	vars := map[string]interface{}{
		"name":         user.Name,
		"email":        user.Email,
		"password":     user.PasswordHash,
		"phone":        user.Phone,
		"user_type":    string(user.UserType),
		"job_category": optional(user.JobCategory),
		"experience":   optional(user.Experience),
		"province":     optional(user.Province),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	rows := toRows(database.LastResult(results))
	if len(rows) == 0 {
		return errors.New("create user: no record returned")
	}
	created := parseUser(rows[0])
	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	user.UpdatedAt = created.UpdatedAt
	return nil
}

// GetByID retrieves a user by ID. Returns nil, nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userFields + ` FROM type::thing('user', $id)`
	return r.queryOne(ctx, query, map[string]interface{}{"id": id})
}

// GetByEmail retrieves a user by email. Returns nil, nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userFields + ` FROM user WHERE email = $email LIMIT 1`
	return r.queryOne(ctx, query, map[string]interface{}{"email": email})
}

// UpdateProfile replaces the editable profile fields and returns the stored user.
// Returns nil, nil when the user does not exist.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.User, error) {
	query := `
		UPDATE type::thing('user', $id) SET
			name = $name,
			phone = $phone,
			job_category = IF $job_category IS NOT NULL THEN $job_category ELSE NONE END,
			experience = IF $experience IS NOT NULL THEN $experience ELSE NONE END,
			province = IF $province IS NOT NULL THEN $province ELSE NONE END,
			updated_at = time::now()
		WHERE id != NONE
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":           id,
		"name":         req.Name,
		"phone":        req.Phone,
		"job_category": optional(req.JobCategory),
		"experience":   optional(req.Experience),
		"province":     optional(req.Province),
	}
	return r.queryOne(ctx, query, vars)
}

// ListWorkers returns every worker, newest first
func (r *UserRepository) ListWorkers(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userFields + ` FROM user WHERE user_type = 'worker' ORDER BY created_at DESC`
	return r.queryMany(ctx, query, nil)
}

// SearchWorkers matches q case-insensitively against name, job category,
// province and experience
func (r *UserRepository) SearchWorkers(ctx context.Context, q string) ([]*model.User, error) {
	query := `
		SELECT ` + userFields + ` FROM user
		WHERE user_type = 'worker' AND (
			string::contains(string::lowercase(name), $q) OR
			string::contains(string::lowercase(job_category ?? ''), $q) OR
			string::contains(string::lowercase(province ?? ''), $q) OR
			string::contains(string::lowercase(experience ?? ''), $q)
		)
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, map[string]interface{}{"q": strings.ToLower(q)})
}

// WorkersByCategory returns workers whose job category equals category
func (r *UserRepository) WorkersByCategory(ctx context.Context, category string) ([]*model.User, error) {
	query := `SELECT ` + userFields + ` FROM user WHERE user_type = 'worker' AND job_category = $category ORDER BY created_at DESC`
	return r.queryMany(ctx, query, map[string]interface{}{"category": category})
}

func (r *UserRepository) queryOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
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
	return parseUser(data), nil
}

func (r *UserRepository) queryMany(ctx context.Context, query string, vars map[string]interface{}) ([]*model.User, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	rows := extractQueryResults(results)
	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, parseUser(row))
	}
	return users, nil
}

func parseUser(data map[string]interface{}) *model.User {
	return &model.User{
		ID:           extractRecordNumber(data["id"]),
		Name:         getString(data, "name"),
		Email:        getString(data, "email"),
		PasswordHash: getString(data, "password"),
		Phone:        getString(data, "phone"),
		UserType:     model.UserType(getString(data, "user_type")),
		JobCategory:  getStringPtr(data, "job_category"),
		Experience:   getStringPtr(data, "experience"),
		Province:     getStringPtr(data, "province"),
		CreatedAt:    getTime(data, "created_at"),
		UpdatedAt:    getTime(data, "updated_at"),
	}
}
