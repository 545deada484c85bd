package handler

import (
	"net/http"

	"github.com/trustworkers/api/internal/middleware"
	"github.com/trustworkers/api/internal/model"
)

// Routes bundles everything the router needs
type Routes struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Jobs    *JobHandler
	Workers *WorkerHandler

	// RequireAuth guards protected endpoints
	RequireAuth middleware.Middleware
	// PublicLimit throttles the unauthenticated auth endpoints; may be nil
	PublicLimit middleware.Middleware
}

// NewRouter registers every endpoint on a new ServeMux
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.Handler {
		return rt.RequireAuth(h)
	}
	public := func(h http.HandlerFunc) http.Handler {
		if rt.PublicLimit == nil {
			return h
		}
		return rt.PublicLimit(h)
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", rt.Health.Health)

	// Auth endpoints (public)
	mux.Handle("POST /v1/auth/register", public(rt.Auth.Register))
	mux.Handle("POST /v1/auth/login", public(rt.Auth.Login))
	mux.Handle("POST /v1/auth/reset-password", public(rt.Auth.ResetPassword))

	// Auth endpoints (protected)
	mux.Handle("POST /v1/auth/logout", protected(rt.Auth.Logout))
	mux.Handle("GET /v1/auth/profile", protected(rt.Auth.Profile))
	mux.Handle("PUT /v1/auth/profile", protected(rt.Auth.UpdateProfile))

	// Job endpoints
	mux.Handle("GET /v1/jobs", protected(rt.Jobs.List))
	mux.Handle("GET /v1/jobs/search", protected(rt.Jobs.Search))
	mux.Handle("GET /v1/jobs/by-category", protected(rt.Jobs.ByCategory))
	mux.Handle("GET /v1/jobs/mine", protected(rt.Jobs.Mine))
	mux.Handle("POST /v1/jobs", protected(rt.Jobs.Create))
	mux.Handle("PUT /v1/jobs/{id}", protected(rt.Jobs.Update))
	mux.Handle("DELETE /v1/jobs/{id}", protected(rt.Jobs.Delete))

	// Worker directory
	mux.Handle("GET /v1/workers", protected(rt.Workers.List))
	mux.Handle("GET /v1/workers/search", protected(rt.Workers.Search))
	mux.Handle("GET /v1/workers/by-category", protected(rt.Workers.ByCategory))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewNotFoundError("Endpoint not found."))
	})

	return mux
}
