package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/pkg/jwt"
)

// ============================================================================
// Mock Verifier
// ============================================================================

type mockVerifier struct {
	verifyFunc func(token string) (*jwt.Principal, error)
	calls      int
	lastToken  string
}

func (m *mockVerifier) Verify(token string) (*jwt.Principal, error) {
	m.calls++
	m.lastToken = token
	return m.verifyFunc(token)
}

// acceptingVerifier returns the principal for any token
func acceptingVerifier(userID int64, email string) *mockVerifier {
	return &mockVerifier{
		verifyFunc: func(string) (*jwt.Principal, error) {
			return &jwt.Principal{SubjectID: userID, Email: email}, nil
		},
	}
}

// failingVerifier returns the specified error
func failingVerifier(err error) *mockVerifier {
	return &mockVerifier{
		verifyFunc: func(string) (*jwt.Principal, error) {
			return nil, err
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func assertAccessDenied(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("expected WWW-Authenticate Bearer, got %q", got)
	}
	var body model.APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Success || body.Message != model.AccessDeniedMessage {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}

// ============================================================================
// RequireAuth() Tests
// ============================================================================

func TestRequireAuth_MissingHeader_RejectsWithoutVerifying(t *testing.T) {
	t.Parallel()
	verifier := acceptingVerifier(1, "a@b.com")
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RequireAuth(verifier)(handler).ServeHTTP(rr, newTestRequest(""))

	assertAccessDenied(t, rr)
	if handler.called {
		t.Error("handler should not have been called")
	}
	if verifier.calls != 0 {
		t.Errorf("verifier should not be called for a missing credential, got %d calls", verifier.calls)
	}
}

func TestRequireAuth_BlankCredential_RejectsWithoutVerifying(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"Bearer ", "   ", "bearer \t"} {
		verifier := acceptingVerifier(1, "a@b.com")
		handler := &captureHandler{}
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header["Authorization"] = []string{header}
		rr := httptest.NewRecorder()

		RequireAuth(verifier)(handler).ServeHTTP(rr, req)

		assertAccessDenied(t, rr)
		if verifier.calls != 0 || handler.called {
			t.Errorf("header %q: expected rejection before verification", header)
		}
	}
}

func TestRequireAuth_ValidToken_SetsPrincipal(t *testing.T) {
	t.Parallel()
	verifier := acceptingVerifier(42, "a@b.com")
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RequireAuth(verifier)(handler).ServeHTTP(rr, newTestRequest("Bearer abc.def.ghi"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if verifier.lastToken != "abc.def.ghi" {
		t.Errorf("expected stripped token, got %q", verifier.lastToken)
	}
	if got := GetUserID(handler.ctx); got != 42 {
		t.Errorf("expected user id 42, got %d", got)
	}
	if p := GetPrincipal(handler.ctx); p == nil || p.Email != "a@b.com" {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"bearer tok", "BEARER tok", "BeArEr   tok  "} {
		verifier := acceptingVerifier(1, "a@b.com")
		rr := httptest.NewRecorder()

		RequireAuth(verifier)(&captureHandler{}).ServeHTTP(rr, newTestRequest(header))

		if rr.Code != http.StatusOK || verifier.lastToken != "tok" {
			t.Errorf("header %q: status %d token %q", header, rr.Code, verifier.lastToken)
		}
	}
}

func TestRequireAuth_NoScheme_UsesWholeValue(t *testing.T) {
	t.Parallel()
	verifier := acceptingVerifier(1, "a@b.com")
	rr := httptest.NewRecorder()

	RequireAuth(verifier)(&captureHandler{}).ServeHTTP(rr, newTestRequest("abc.def.ghi"))

	if verifier.lastToken != "abc.def.ghi" {
		t.Errorf("expected whole value, got %q", verifier.lastToken)
	}
}

func TestRequireAuth_NonCanonicalHeaderName(t *testing.T) {
	t.Parallel()
	verifier := acceptingVerifier(7, "a@b.com")
	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header["authorization"] = []string{"Bearer tok"}
	rr := httptest.NewRecorder()

	RequireAuth(verifier)(handler).ServeHTTP(rr, req)

	if !handler.called || GetUserID(handler.ctx) != 7 {
		t.Errorf("expected lowercase header to authenticate, got status %d", rr.Code)
	}
}

func TestRequireAuth_VerifierErrors_UniformResponse(t *testing.T) {
	t.Parallel()

	var bodies []string
	for _, err := range []error{jwt.ErrMalformed, jwt.ErrBadSignature, jwt.ErrExpired, fmt.Errorf("%w: bad payload", jwt.ErrMalformed)} {
		handler := &captureHandler{}
		rr := httptest.NewRecorder()

		RequireAuth(failingVerifier(err))(handler).ServeHTTP(rr, newTestRequest("Bearer x.y.z"))

		assertAccessDenied(t, rr)
		if handler.called {
			t.Errorf("%v: handler should not have been called", err)
		}
		bodies = append(bodies, rr.Body.String())
	}
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("response bodies differ: %s vs %s", bodies[0], bodies[i])
		}
	}
}

func TestRequireAuth_InternalVerifierFault_Returns500(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RequireAuth(failingVerifier(errors.New("key store unavailable")))(handler).ServeHTTP(rr, newTestRequest("Bearer x.y.z"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
	if rr.Header().Get("WWW-Authenticate") != "" {
		t.Error("expected no WWW-Authenticate challenge on an internal fault")
	}
	if strings.Contains(rr.Body.String(), "key store") {
		t.Errorf("internal error detail leaked: %s", rr.Body.String())
	}
}

func TestRequireAuth_RealVerifier(t *testing.T) {
	t.Parallel()

	signer, err := jwt.NewSigner([]byte("middleware-test-secret-012345678"))
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	now := func() time.Time { return time.Unix(1_000_000, 0) }
	token, err := jwt.NewIssuer(signer, jwt.WithIssuerClock(now)).Issue(9, "w@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	later := func() time.Time { return time.Unix(1_000_000+int64(jwt.TTL/time.Second)+1, 0) }
	fresh := jwt.NewVerifier(signer, jwt.WithVerifierClock(now))
	stale := jwt.NewVerifier(signer, jwt.WithVerifierClock(later))

	handler := &captureHandler{}
	rr := httptest.NewRecorder()
	RequireAuth(fresh)(handler).ServeHTTP(rr, newTestRequest("Bearer "+token))
	if rr.Code != http.StatusOK || GetUserID(handler.ctx) != 9 {
		t.Errorf("expected fresh token to pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	RequireAuth(stale)(&captureHandler{}).ServeHTTP(rr, newTestRequest("Bearer "+token))
	assertAccessDenied(t, rr)
}

// ============================================================================
// Context Accessor Tests
// ============================================================================

func TestGetUserID_EmptyContext_ReturnsZero(t *testing.T) {
	t.Parallel()

	if got := GetUserID(context.Background()); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if p := GetPrincipal(context.Background()); p != nil {
		t.Errorf("expected nil principal, got %+v", p)
	}
}

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"  Bearer abc": "abc",
		"abc":          "abc",
		"Bearer ":      "",
		"":             "",
		"Basic abc":    "Basic abc",
		"Bearer":       "",
		"Bearerabc":    "Bearerabc",
	}
	for in, want := range tests {
		if got := ExtractBearer(in); got != want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", in, got, want)
		}
	}
}
