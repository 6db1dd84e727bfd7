package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"hrflow/internal/auth"
	"hrflow/internal/domain/application"
	"hrflow/internal/domain/audit"
	"hrflow/internal/domain/employee"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/domain/request"
	"hrflow/internal/platform/config"
	cryptoutil "hrflow/internal/platform/crypto"
	"hrflow/internal/platform/db"
	"hrflow/internal/platform/email"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/platform/storage"
	"hrflow/internal/transport/http/api"
	applicationhandler "hrflow/internal/transport/http/handlers/application"
	audithandler "hrflow/internal/transport/http/handlers/audit"
	authnhandler "hrflow/internal/transport/http/handlers/authn"
	employeehandler "hrflow/internal/transport/http/handlers/employee"
	onboardinghandler "hrflow/internal/transport/http/handlers/onboarding"
	requesthandler "hrflow/internal/transport/http/handlers/request"
	"hrflow/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption init failed: %v", err)
	}
	if !cryptoSvc.Configured() {
		slog.Warn("data encryption key not set, personal numbers stored unencrypted")
	}

	collector := metrics.New()
	files := storage.New(cfg.StorageDir, cfg.StorageBaseURL)
	mail := email.New(cfg)

	employees := employee.NewCache(employee.NewStore(pool, cryptoSvc))
	auditSvc := audit.New(pool)
	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)
	requestSvc := request.NewService(request.NewStore(pool))
	stagedStore := onboarding.NewStore(pool)
	applicationSvc := application.NewService(application.NewStore(pool), employees, files, requestSvc)
	applicationSvc.Onboarding = &onboarding.Tracker{Staged: stagedStore}
	onboardingSvc := onboarding.NewService(stagedStore, employees, authSvc, requestSvc, files, mail)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authnhandler.NewHandler(authSvc).RegisterRoutes(r)
		applicationhandler.NewHandler(applicationSvc, auditSvc, collector).RegisterRoutes(r)
		employeehandler.NewHandler(employees).RegisterRoutes(r)
		onboardinghandler.NewHandler(onboardingSvc, auditSvc, collector).RegisterRoutes(r)
		requesthandler.NewHandler(requestSvc, auditSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	fileServer := http.StripPrefix(cfg.StorageBaseURL+"/", http.FileServer(http.Dir(files.Dir())))
	router.Get(cfg.StorageBaseURL+"/*", func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUser(r.Context())
		if !ok || user.Role != auth.RoleHR {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", middleware.GetRequestID(r.Context()))
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	slog.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
