package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/pkg/jwt"
)

// ============================================================================
// Token Helpers
// ============================================================================

// TestSecret is the signing key shared by every TokenHelper.
const TestSecret = "helpers-test-secret-0123456789ab"

// TokenHelper issues and verifies tokens for tests
type TokenHelper struct {
	Signer   *jwt.Signer
	Issuer   *jwt.Issuer
	Verifier *jwt.Verifier
	now      func() time.Time
}

// NewTokenHelper creates a token helper with an in-memory key
func NewTokenHelper(t *testing.T) *TokenHelper {
	t.Helper()

	signer, err := jwt.NewSigner([]byte(TestSecret))
	if err != nil {
		t.Fatalf("helpers: failed to create signer: %v", err)
	}

	h := &TokenHelper{Signer: signer, now: time.Now}
	h.Issuer = jwt.NewIssuer(signer)
	h.Verifier = jwt.NewVerifier(signer)
	return h
}

// GenerateToken creates a valid token for user
func (h *TokenHelper) GenerateToken(t *testing.T, user *model.User) string {
	t.Helper()

	token, err := h.Issuer.Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("helpers: failed to issue token: %v", err)
	}
	return token
}

// GenerateExpiredToken creates a correctly signed token that expired an hour ago
func (h *TokenHelper) GenerateExpiredToken(t *testing.T, user *model.User) string {
	t.Helper()

	past := func() time.Time { return h.now().Add(-jwt.TTL - time.Hour) }
	token, err := jwt.NewIssuer(h.Signer, jwt.WithIssuerClock(past)).Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("helpers: failed to issue token: %v", err)
	}
	return token
}

// GenerateForeignToken creates a token signed with a different key
func (h *TokenHelper) GenerateForeignToken(t *testing.T, user *model.User) string {
	t.Helper()

	other, err := jwt.NewSigner([]byte("some-other-secret-0123456789abcd"))
	if err != nil {
		t.Fatalf("helpers: failed to create signer: %v", err)
	}
	token, err := jwt.NewIssuer(other).Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("helpers: failed to issue token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	raw     []byte
	headers map[string]string
	tokens  *TokenHelper
	user    *model.User
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithRawBody sets the request body verbatim
func (rb *RequestBuilder) WithRawBody(body string) *RequestBuilder {
	rb.raw = []byte(body)
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithBearer sets Authorization: Bearer <token>
func (rb *RequestBuilder) WithBearer(token string) *RequestBuilder {
	return rb.WithHeader("Authorization", "Bearer "+token)
}

// WithAuth adds a freshly issued token for the given user
func (rb *RequestBuilder) WithAuth(tokens *TokenHelper, user *model.User) *RequestBuilder {
	rb.tokens = tokens
	rb.user = user
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	switch {
	case rb.raw != nil:
		bodyReader = bytes.NewReader(rb.raw)
	case rb.body != nil:
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)

	// Set content type for requests with body
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add custom headers
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}

	// Add auth header
	if rb.tokens != nil && rb.user != nil {
		req.Header.Set("Authorization", "Bearer "+rb.tokens.GenerateToken(rb.t, rb.user))
	}

	return req
}

// Do builds the request, serves it through h and returns the recorder
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// Envelope is the common shape of every API response
type Envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Code    model.ErrorCode    `json:"code,omitempty"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertEnvelope checks status, the success flag and the message of a response
func AssertEnvelope(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) Envelope {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var env Envelope
	DecodeResponse(t, resp, &env)

	wantSuccess := expectedStatus < 400
	if env.Success != wantSuccess {
		t.Errorf("expected success=%v, got %v", wantSuccess, env.Success)
	}
	if expectedMessage != "" && env.Message != expectedMessage {
		t.Errorf("expected message %q, got %q", expectedMessage, env.Message)
	}
	return env
}

// AssertAccessDenied checks the uniform 401 returned for any token failure
func AssertAccessDenied(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()

	AssertEnvelope(t, resp, http.StatusUnauthorized, model.AccessDeniedMessage)
	if got := resp.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %q", got)
	}
}

// AssertJSONContains checks that the response body contains expected key-value pairs
func AssertJSONContains(t *testing.T, resp *httptest.ResponseRecorder, expected map[string]interface{}) {
	t.Helper()

	var actual map[string]interface{}
	DecodeResponse(t, resp, &actual)

	for key, expectedVal := range expected {
		actualVal, ok := actual[key]
		if !ok {
			t.Errorf("expected key %q not found in response", key)
			continue
		}

		if !jsonEqual(expectedVal, actualVal) {
			t.Errorf("for key %q: expected %v, got %v", key, expectedVal, actualVal)
		}
	}
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that table:id exists in the database
func AssertRecordExists(t *testing.T, db database.Database, table string, id int64) {
	t.Helper()
	if !recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that table:id does not exist
func AssertRecordNotExists(t *testing.T, db database.Database, table string, id int64) {
	t.Helper()
	if recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to not exist, but it does", table, id)
	}
}

func recordExists(t *testing.T, db database.Database, table string, id int64) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := db.Query(ctx, "SELECT * FROM type::thing($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	return len(database.LastResult(results)) > 0
}

// ============================================================================
// Utility Helpers
// ============================================================================

// jsonEqual compares two JSON values for equality
func jsonEqual(a, b interface{}) bool {
	aBytes, _ := json.Marshal(a)
	bBytes, _ := json.Marshal(b)
	return string(aBytes) == string(bBytes)
}

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the bool
func BoolPtr(b bool) *bool {
	return &b
}
