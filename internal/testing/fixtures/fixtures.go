package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trustworkers/api/internal/model"
)

// DefaultPassword is the plain-text password of every fixture user.
const DefaultPassword = "testpass123"

// UserCreator is satisfied by repository.UserRepository and memstore.UserStore.
type UserCreator interface {
	Create(ctx context.Context, user *model.User) error
}

// JobCreator is satisfied by repository.JobRepository and memstore.JobStore.
type JobCreator interface {
	Create(ctx context.Context, job *model.JobPost) error
}

// Factory creates test entities through the repositories
type Factory struct {
	users UserCreator
	jobs  JobCreator
}

// New creates a new fixture factory
func New(users UserCreator, jobs JobCreator) *Factory {
	return &Factory{users: users, jobs: jobs}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	UserType    model.UserType
	JobCategory *string
	Experience  *string
	Province    *string
}

// CreateUser creates a normal user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Name:     "User " + id,
		Email:    fmt.Sprintf("user_%s@test.local", id),
		Password: DefaultPassword,
		Phone:    "0771234567",
		UserType: model.UserTypeNormal,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{
		Name:         o.Name,
		Email:        o.Email,
		PasswordHash: string(hash),
		Phone:        o.Phone,
		UserType:     o.UserType,
		JobCategory:  o.JobCategory,
		Experience:   o.Experience,
		Province:     o.Province,
	}
	if err := f.users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// CreateWorker creates a worker listed under category in province
func (f *Factory) CreateWorker(t *testing.T, category, province string, opts ...func(*UserOpts)) *model.User {
	t.Helper()
	return f.CreateUser(t, append([]func(*UserOpts){func(o *UserOpts) {
		o.UserType = model.UserTypeWorker
		o.JobCategory = &category
		o.Province = &province
	}}, opts...)...)
}

// WithName sets the user's name
func WithName(name string) func(*UserOpts) {
	return func(o *UserOpts) { o.Name = name }
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// ============================================================================
// Job Fixtures
// ============================================================================

// JobOpts customizes job creation
type JobOpts struct {
	Title       string
	JobType     string
	Category    string
	District    string
	Description string
}

// CreateJob creates an active job post by poster
func (f *Factory) CreateJob(t *testing.T, poster *model.User, opts ...func(*JobOpts)) *model.JobPost {
	t.Helper()

	o := &JobOpts{
		Title:       "Job " + randomID(),
		JobType:     "full-time",
		Category:    "construction",
		District:    "Colombo",
		Description: "Fixture job post",
	}
	for _, fn := range opts {
		fn(o)
	}

	job := &model.JobPost{
		Title:        o.Title,
		JobType:      o.JobType,
		Category:     o.Category,
		District:     o.District,
		Description:  o.Description,
		ContactPhone: poster.Phone,
		PostedBy:     poster.ID,
	}
	if err := f.jobs.Create(ctx(t), job); err != nil {
		t.Fatalf("fixtures: failed to create job: %v", err)
	}
	return job
}

// WithTitle sets the job title
func WithTitle(title string) func(*JobOpts) {
	return func(o *JobOpts) { o.Title = title }
}

// WithCategory sets the job category
func WithCategory(category string) func(*JobOpts) {
	return func(o *JobOpts) { o.Category = category }
}

// WithDistrict sets the job district
func WithDistrict(district string) func(*JobOpts) {
	return func(o *JobOpts) { o.District = district }
}
