package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/internal/repository"
	"github.com/trustworkers/api/internal/service"
	"github.com/trustworkers/api/internal/testing/fixtures"
	"github.com/trustworkers/api/internal/testing/helpers"
	"github.com/trustworkers/api/internal/testing/testdb"
)

/*
FEATURE: Accounts and job posts against SurrealDB
DOMAIN: Auth, Jobs

ACCEPTANCE CRITERIA:
===================

AC-AUTH-001: Register then authenticate
  GIVEN valid registration data
  WHEN the user registers
  THEN a bearer token for the new user id is returned
  AND the same credentials log in

AC-AUTH-002: Duplicate email
  GIVEN an existing user with email X
  WHEN another registration uses X in any letter case
  THEN registration fails with ErrEmailAlreadyExists

AC-JOB-001: Owner lifecycle
  GIVEN a user with a job post
  WHEN the owner updates and then deletes the post
  THEN the update is visible
  AND the post disappears from active listings but stays in the owner's list

AC-JOB-002: Foreign edits
  GIVEN a post owned by user A
  WHEN user B updates or deletes it
  THEN the call fails with ErrJobNotFound
*/

type stack struct {
	tdb      *testdb.TestDB
	auth     *service.AuthService
	jobs     *service.JobService
	tokens   *helpers.TokenHelper
	fixtures *fixtures.Factory
}

func newStack(t *testing.T) *stack {
	t.Helper()

	tdb := testdb.New(t)
	userRepo := repository.NewUserRepository(tdb.DB)
	jobRepo := repository.NewJobRepository(tdb.DB)
	tokens := helpers.NewTokenHelper(t)

	return &stack{
		tdb: tdb,
		auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:     userRepo,
			Hasher:       service.NewBcryptHasher(4),
			TokenService: service.NewTokenService(tokens.Issuer),
		}),
		jobs:     service.NewJobService(jobRepo),
		tokens:   tokens,
		fixtures: fixtures.New(userRepo, jobRepo),
	}
}

func TestAcceptance_RegisterThenLogin(t *testing.T) {
	// AC-AUTH-001: Register then authenticate
	s := newStack(t)
	ctx := s.tdb.Ctx()

	registered, err := s.auth.Register(ctx, model.RegisterRequest{
		Name:     "Nimal",
		Email:    "nimal@test.local",
		Password: "password123",
		Phone:    "0771234567",
		UserType: model.UserTypeNormal,
	})
	require.NoError(t, err)

	principal, err := s.tokens.Verifier.Verify(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, principal.SubjectID)

	loggedIn, err := s.auth.Login(ctx, model.LoginRequest{Email: "NIMAL@test.local", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAcceptance_DuplicateEmail(t *testing.T) {
	// AC-AUTH-002: Duplicate email
	s := newStack(t)
	s.fixtures.CreateUser(t, fixtures.WithEmail("taken@test.local"))

	_, err := s.auth.Register(s.tdb.Ctx(), model.RegisterRequest{
		Name:     "Copy",
		Email:    "Taken@Test.Local",
		Password: "password123",
		Phone:    "0771234567",
		UserType: model.UserTypeWorker,
	})

	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAcceptance_OwnerLifecycle(t *testing.T) {
	// AC-JOB-001: Owner lifecycle
	s := newStack(t)
	ctx := s.tdb.Ctx()
	owner := s.fixtures.CreateUser(t)
	job := s.fixtures.CreateJob(t, owner)

	updated, err := s.jobs.Update(ctx, owner.ID, job.ID, model.UpdateJobRequest{Title: helpers.StringPtr("Updated")})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)

	require.NoError(t, s.jobs.Delete(ctx, owner.ID, job.ID))

	active, err := s.jobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	mine, err := s.jobs.ByPoster(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].IsActive)
}

func TestAcceptance_ForeignEdits(t *testing.T) {
	// AC-JOB-002: Foreign edits
	s := newStack(t)
	ctx := s.tdb.Ctx()
	owner := s.fixtures.CreateUser(t)
	other := s.fixtures.CreateUser(t)
	job := s.fixtures.CreateJob(t, owner)

	_, err := s.jobs.Update(ctx, other.ID, job.ID, model.UpdateJobRequest{Title: helpers.StringPtr("Mine now")})
	assert.ErrorIs(t, err, service.ErrJobNotFound)

	err = s.jobs.Delete(ctx, other.ID, job.ID)
	assert.ErrorIs(t, err, service.ErrJobNotFound)
}
