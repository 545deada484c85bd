package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/internal/testing/fixtures"
	"github.com/trustworkers/api/internal/testing/helpers"
)

type authBody struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int64       `json:"expires_in"`
	User      *model.User `json:"user"`
}

// ============================================================================
// Register
// ============================================================================

func TestRegister_Success(t *testing.T) {
	ts := newTestServer(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(map[string]string{
			"name":         "Nimal Perera",
			"email":        "Nimal@Example.com",
			"password":     "password123",
			"phone":        "0771234567",
			"user_type":    "worker",
			"job_category": "plumbing",
			"province":     "Western",
		}).Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusCreated, "User registered successfully.")

	var body authBody
	helpers.DecodeResponse(t, rr, &body)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.EqualValues(t, 86400, body.ExpiresIn)
	require.NotNil(t, body.User)
	assert.Equal(t, "nimal@example.com", body.User.Email)
	assert.Equal(t, model.UserTypeWorker, body.User.UserType)
	assert.NotContains(t, rr.Body.String(), "password")

	principal, err := ts.tokens.Verifier.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, body.User.ID, principal.SubjectID)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)
	ts.fixtures.CreateUser(t, fixtures.WithEmail("taken@example.com"))

	valid := func() map[string]string {
		return map[string]string{
			"name":      "A",
			"email":     "new@example.com",
			"password":  "password123",
			"phone":     "0771234567",
			"user_type": "normal",
		}
	}

	tests := []struct {
		name    string
		mutate  func(map[string]string)
		status  int
		message string
	}{
		{"missing phone", func(b map[string]string) { delete(b, "phone") }, http.StatusBadRequest, "Incomplete data. Please fill all required fields."},
		{"bad email", func(b map[string]string) { b["email"] = "nope" }, http.StatusBadRequest, "Invalid email format."},
		{"bad user type", func(b map[string]string) { b["user_type"] = "admin" }, http.StatusBadRequest, "Invalid user type."},
		{"short password", func(b map[string]string) { b["password"] = "short" }, http.StatusBadRequest, "Password must be between 8 and 72 characters."},
		{"duplicate", func(b map[string]string) { b["email"] = "TAKEN@example.com" }, http.StatusConflict, "Email already exists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)

			rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").WithBody(body).Do(ts.handler)

			helpers.AssertEnvelope(t, rr, tt.status, tt.message)
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").WithRawBody("{not json").Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusBadRequest, "Incomplete data. Please fill all required fields.")
}

// ============================================================================
// Login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)
	user := ts.fixtures.CreateUser(t, fixtures.WithEmail("kamal@example.com"))

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(map[string]string{"email": "kamal@example.com", "password": fixtures.DefaultPassword}).
		Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusOK, "Login successful.")

	var body authBody
	helpers.DecodeResponse(t, rr, &body)
	require.NotNil(t, body.User)
	assert.Equal(t, user.ID, body.User.ID)
	assert.NotEmpty(t, body.Token)
}

func TestLogin_FailuresAreUniform(t *testing.T) {
	ts := newTestServer(t)
	ts.fixtures.CreateUser(t, fixtures.WithEmail("kamal@example.com"))

	unknown := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(map[string]string{"email": "ghost@example.com", "password": "whatever1"}).
		Do(ts.handler)
	wrong := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(map[string]string{"email": "kamal@example.com", "password": "wrongpass1"}).
		Do(ts.handler)

	helpers.AssertEnvelope(t, unknown, http.StatusUnauthorized, "Invalid email or password.")
	helpers.AssertEnvelope(t, wrong, http.StatusUnauthorized, "Invalid email or password.")
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/login").
		WithBody(map[string]string{"email": "a@b.com"}).
		Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusBadRequest, "Email and password are required.")
}

// ============================================================================
// Logout / Profile
// ============================================================================

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	user := ts.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/logout").WithAuth(ts.tokens, user).Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusOK, "Logout successful.")
}

func TestProfile_Get(t *testing.T) {
	ts := newTestServer(t)
	user := ts.fixtures.CreateUser(t, fixtures.WithName("Sunil"))

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/auth/profile").WithAuth(ts.tokens, user).Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusOK, "Profile retrieved successfully.")

	var body struct {
		User model.User `json:"user"`
	}
	helpers.DecodeResponse(t, rr, &body)
	assert.Equal(t, user.ID, body.User.ID)
	assert.Equal(t, "Sunil", body.User.Name)
}

func TestProfile_GetDeletedUser(t *testing.T) {
	ts := newTestServer(t)
	ghost := &model.User{ID: 999, Email: "ghost@example.com"}

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/auth/profile").WithAuth(ts.tokens, ghost).Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusNotFound, "User not found.")
}

func TestProfile_Update(t *testing.T) {
	ts := newTestServer(t)
	user := ts.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodPut, "/v1/auth/profile").
		WithAuth(ts.tokens, user).
		WithBody(map[string]string{"name": "  Renamed ", "phone": "0711111111", "province": "Central"}).
		Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusOK, "Profile updated successfully.")

	var body struct {
		User model.User `json:"user"`
	}
	helpers.DecodeResponse(t, rr, &body)
	assert.Equal(t, "Renamed", body.User.Name)
	assert.Equal(t, "0711111111", body.User.Phone)
	require.NotNil(t, body.User.Province)
	assert.Equal(t, "Central", *body.User.Province)
}

func TestProfile_UpdateRequiresNameAndPhone(t *testing.T) {
	ts := newTestServer(t)
	user := ts.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodPut, "/v1/auth/profile").
		WithAuth(ts.tokens, user).
		WithBody(map[string]string{"name": "Only name"}).
		Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusBadRequest, "Name and phone are required.")
}

// ============================================================================
// Reset Password
// ============================================================================

func TestResetPassword_SameAnswerForKnownAndUnknown(t *testing.T) {
	ts := newTestServer(t)
	ts.fixtures.CreateUser(t, fixtures.WithEmail("known@example.com"))

	known := helpers.NewRequest(t, http.MethodPost, "/v1/auth/reset-password").
		WithBody(map[string]string{"email": "known@example.com"}).Do(ts.handler)
	unknown := helpers.NewRequest(t, http.MethodPost, "/v1/auth/reset-password").
		WithBody(map[string]string{"email": "unknown@example.com"}).Do(ts.handler)

	helpers.AssertEnvelope(t, known, http.StatusOK, ResetPasswordMessage)
	helpers.AssertEnvelope(t, unknown, http.StatusOK, ResetPasswordMessage)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestResetPassword_MissingEmail(t *testing.T) {
	ts := newTestServer(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/reset-password").
		WithBody(map[string]string{}).Do(ts.handler)

	helpers.AssertEnvelope(t, rr, http.StatusBadRequest, "Email is required.")
}
