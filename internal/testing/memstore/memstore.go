// Package memstore provides in-memory implementations of the service
// repositories for unit tests. Behavior mirrors the SurrealDB repositories:
// integer ids from 1, newest first ordering, case-insensitive substring search,
// nil, nil for missing records.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/model"
)

// Store holds users and job posts.
type Store struct {
	mu     sync.RWMutex
	users  map[int64]*model.User
	jobs   map[int64]*model.JobPost
	nextU  int64
	nextJ  int64
	clock  time.Time
	FailOn error // when set, every call returns it
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users: make(map[int64]*model.User),
		jobs:  make(map[int64]*model.JobPost),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Users returns the store as a service.UserRepository.
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Jobs returns the store as a service.JobRepository.
func (s *Store) Jobs() *JobStore { return &JobStore{s} }

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func cloneJob(j *model.JobPost) *model.JobPost {
	c := *j
	return &c
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(q))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UserStore implements service.UserRepository.
type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.FailOn != nil {
		return u.s.FailOn
	}
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
	}
	u.s.nextU++
	now := u.s.tick()
	user.ID = u.s.nextU
	user.CreatedAt = now
	user.UpdatedAt = now
	u.s.users[user.ID] = cloneUser(user)
	return nil
}

func (u *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	if u.s.FailOn != nil {
		return nil, u.s.FailOn
	}
	if user, ok := u.s.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	if u.s.FailOn != nil {
		return nil, u.s.FailOn
	}
	for _, user := range u.s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (u *UserStore) UpdateProfile(_ context.Context, id int64, req *model.UpdateProfileRequest) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.FailOn != nil {
		return nil, u.s.FailOn
	}
	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	user.Name = req.Name
	user.Phone = req.Phone
	user.JobCategory = req.JobCategory
	user.Experience = req.Experience
	user.Province = req.Province
	user.UpdatedAt = u.s.tick()
	return cloneUser(user), nil
}

func (u *UserStore) ListWorkers(_ context.Context) ([]*model.User, error) {
	return u.filter(func(user *model.User) bool { return true })
}

func (u *UserStore) SearchWorkers(_ context.Context, q string) ([]*model.User, error) {
	return u.filter(func(user *model.User) bool {
		return contains(user.Name, q) || contains(deref(user.JobCategory), q) ||
			contains(deref(user.Province), q) || contains(deref(user.Experience), q)
	})
}

func (u *UserStore) WorkersByCategory(_ context.Context, category string) ([]*model.User, error) {
	return u.filter(func(user *model.User) bool { return deref(user.JobCategory) == category })
}

func (u *UserStore) filter(keep func(*model.User) bool) ([]*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	if u.s.FailOn != nil {
		return nil, u.s.FailOn
	}
	out := make([]*model.User, 0)
	for _, user := range u.s.users {
		if user.IsWorker() && keep(user) {
			out = append(out, cloneUser(user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// JobStore implements service.JobRepository.
type JobStore struct{ s *Store }

func (j *JobStore) Create(_ context.Context, job *model.JobPost) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if j.s.FailOn != nil {
		return j.s.FailOn
	}
	poster, ok := j.s.users[job.PostedBy]
	if !ok {
		return fmt.Errorf("%w: poster %d does not exist", database.ErrQuery, job.PostedBy)
	}
	j.s.nextJ++
	now := j.s.tick()
	job.ID = j.s.nextJ
	job.IsActive = true
	job.PosterName = poster.Name
	job.CreatedAt = now
	job.UpdatedAt = now
	j.s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (j *JobStore) GetByID(_ context.Context, id int64) (*model.JobPost, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	if j.s.FailOn != nil {
		return nil, j.s.FailOn
	}
	if job, ok := j.s.jobs[id]; ok {
		return j.withPoster(job), nil
	}
	return nil, nil
}

func (j *JobStore) ListActive(_ context.Context) ([]*model.JobPost, error) {
	return j.filter(func(job *model.JobPost) bool { return job.IsActive })
}

func (j *JobStore) SearchActive(_ context.Context, q string) ([]*model.JobPost, error) {
	return j.filter(func(job *model.JobPost) bool {
		return job.IsActive && (contains(job.Title, q) || contains(job.Description, q) ||
			contains(job.Category, q) || contains(job.District, q))
	})
}

func (j *JobStore) ListActiveByCategory(_ context.Context, category string) ([]*model.JobPost, error) {
	return j.filter(func(job *model.JobPost) bool { return job.IsActive && job.Category == category })
}

func (j *JobStore) ListByPoster(_ context.Context, userID int64) ([]*model.JobPost, error) {
	return j.filter(func(job *model.JobPost) bool { return job.PostedBy == userID })
}

func (j *JobStore) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if j.s.FailOn != nil {
		return j.s.FailOn
	}
	job, ok := j.s.jobs[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			job.Title = v.(string)
		case "job_type":
			job.JobType = v.(string)
		case "category":
			job.Category = v.(string)
		case "district":
			job.District = v.(string)
		case "description":
			job.Description = v.(string)
		case "contact_phone":
			job.ContactPhone = v.(string)
		case "is_active":
			job.IsActive = v.(bool)
		}
	}
	job.UpdatedAt = j.s.tick()
	return nil
}

func (j *JobStore) Deactivate(ctx context.Context, id int64) error {
	return j.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (j *JobStore) filter(keep func(*model.JobPost) bool) ([]*model.JobPost, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	if j.s.FailOn != nil {
		return nil, j.s.FailOn
	}
	out := make([]*model.JobPost, 0)
	for _, job := range j.s.jobs {
		if keep(job) {
			out = append(out, j.withPoster(job))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

// withPoster copies a post and refreshes poster_name; callers hold the lock.
func (j *JobStore) withPoster(job *model.JobPost) *model.JobPost {
	c := cloneJob(job)
	if poster, ok := j.s.users[job.PostedBy]; ok {
		c.PosterName = poster.Name
	}
	return c
}
