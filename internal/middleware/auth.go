package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/pkg/jwt"
)

// TokenVerifier checks a bearer token; satisfied by *jwt.Verifier
type TokenVerifier interface {
	Verify(token string) (*jwt.Principal, error)
}

// PrincipalKey is the context key for the verified principal
const PrincipalKey contextKey = "principal"

// RequireAuth returns a middleware that admits only requests carrying a valid
// bearer token. Every authentication failure produces the same 401 body; the
// reason is logged. Any other verifier error is a 500.
func RequireAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(verifier, r.Header)
			if err != nil && !jwt.IsAuthError(err) {
				slog.ErrorContext(r.Context(), "token verification failed",
					slog.String("error", err.Error()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				model.NewInternalError("").WriteJSON(w)
				return
			}
			if err != nil {
				slog.WarnContext(r.Context(), "authentication failed",
					slog.String("reason", jwt.Reason(err)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				w.Header().Set("WWW-Authenticate", "Bearer")
				model.NewAccessDeniedError().WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			ctx = context.WithValue(ctx, UserIDKey, principal.SubjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(verifier TokenVerifier, h http.Header) (*jwt.Principal, error) {
	token := ExtractBearer(authorizationValue(h))
	if token == "" {
		return nil, jwt.ErrMissing
	}
	return verifier.Verify(token)
}

// authorizationValue finds the Authorization header under any casing. Go
// canonicalizes names from the wire, but handlers and proxies can set raw keys.
func authorizationValue(h http.Header) string {
	if v := h.Get("Authorization"); v != "" {
		return v
	}
	for name, values := range h {
		if strings.EqualFold(name, "Authorization") && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// ExtractBearer returns the credential from an Authorization value. The
// "Bearer" scheme is stripped case-insensitively; a value without it is
// taken whole. A bare scheme yields "".
func ExtractBearer(value string) string {
	value = strings.TrimSpace(value)
	const scheme = "bearer"
	if len(value) < len(scheme) || !strings.EqualFold(value[:len(scheme)], scheme) {
		return value
	}
	rest := value[len(scheme):]
	if rest == "" {
		return ""
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return value
	}
	return strings.TrimSpace(rest)
}

// GetPrincipal extracts the verified principal from context
func GetPrincipal(ctx context.Context) *jwt.Principal {
	if p, ok := ctx.Value(PrincipalKey).(*jwt.Principal); ok {
		return p
	}
	return nil
}

// GetUserID extracts the authenticated user ID from context, or 0
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}
