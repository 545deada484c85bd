package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/trustworkers/api/internal/config"
	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/handler"
	"github.com/trustworkers/api/internal/middleware"
	"github.com/trustworkers/api/internal/repository"
	"github.com/trustworkers/api/internal/service"
	"github.com/trustworkers/api/migrations"
	"github.com/trustworkers/api/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password.Reveal(),
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, migrations.Schema); err != nil {
			slog.Error("failed to apply schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("schema applied")
	}

	// Initialize token signing
	signer, err := jwt.NewSigner([]byte(cfg.JWT.Secret.Reveal()), jwt.WithKeyID(cfg.JWT.KeyID))
	if err != nil {
		slog.Error("failed to initialize token signer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	issuer := jwt.NewIssuer(signer,
		jwt.WithIssuerIdentity(cfg.JWT.Issuer, cfg.JWT.Audience),
		jwt.WithTokenIDs(uuid.NewString),
	)
	verifier := jwt.NewVerifier(signer, jwt.WithVerifierIdentity(cfg.JWT.Issuer, cfg.JWT.Audience))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(issuer)
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		Hasher:       service.NewBcryptHasher(cfg.Password.BcryptCost),
		TokenService: tokenService,
		Logger:       logger,
	})
	jobService := service.NewJobService(jobRepo)
	workerService := service.NewWorkerService(userRepo)

	// Initialize rate limiter for the public auth endpoints
	limiterCfg := middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	}
	var limiter middleware.Limiter
	if redisURL := cfg.RateLimit.RedisURL.Reveal(); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Error("invalid RATE_LIMIT_REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		limiter = middleware.NewRedisLimiter(client, limiterCfg)
		slog.Info("rate limiter using redis", slog.String("addr", opts.Addr))
	} else {
		memLimiter := middleware.NewMemoryLimiter(limiterCfg)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	// Create router and register routes
	mux := handler.NewRouter(handler.Routes{
		Health:      handler.NewHealthHandler(db),
		Auth:        handler.NewAuthHandler(authService),
		Jobs:        handler.NewJobHandler(jobService),
		Workers:     handler.NewWorkerHandler(workerService),
		RequireAuth: middleware.RequireAuth(verifier),
		PublicLimit: middleware.RateLimit(limiter),
	})

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
