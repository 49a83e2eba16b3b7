package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/dashboard"
	"skillsaudit/internal/domain/employees"
	"skillsaudit/internal/domain/notifications"
	"skillsaudit/internal/domain/reports"
	"skillsaudit/internal/domain/support"
	"skillsaudit/internal/domain/training"
	"skillsaudit/internal/platform/blobstore"
	"skillsaudit/internal/platform/config"
	"skillsaudit/internal/platform/db"
	"skillsaudit/internal/platform/identity"
	audithandler "skillsaudit/internal/transport/http/handlers/audit"
	authhandler "skillsaudit/internal/transport/http/handlers/auth"
	dashboardhandler "skillsaudit/internal/transport/http/handlers/dashboard"
	employeehandler "skillsaudit/internal/transport/http/handlers/employees"
	notificationhandler "skillsaudit/internal/transport/http/handlers/notifications"
	reporthandler "skillsaudit/internal/transport/http/handlers/reports"
	supporthandler "skillsaudit/internal/transport/http/handlers/support"
	traininghandler "skillsaudit/internal/transport/http/handlers/trainings"
	"skillsaudit/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "skills-audit-portal"),
		slog.String("env", cfg.Environment),
	)
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

	blobs, err := blobstore.NewLocal(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	gateway := identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey)

	auditStore := audit.NewStore(pool)
	userStore := auth.NewStore(pool)
	notificationStore := notifications.NewStore(pool)
	employeeStore := employees.NewStore(pool)
	trainingStore := training.NewStore(pool)
	reportStore := reports.NewStore(pool)
	supportStore := support.NewStore(pool)

	auditSvc := audit.NewService(auditStore)
	notificationSvc := notifications.NewService(notificationStore, userStore)
	authSvc := auth.NewService(gateway, userStore, auditSvc, cfg.JWTSecret)
	employeeSvc := employees.NewService(employeeStore, userStore, gateway, notificationSvc, auditSvc, blobs)
	trainingSvc := training.NewService(trainingStore, notificationSvc, auditSvc)
	reportSvc := reports.NewService(reportStore, employeeSvc, blobs, auditSvc)
	dashboardSvc := dashboard.NewService(employeeSvc, trainingSvc, reportSvc, auditSvc)
	supportSvc := support.NewService(supportStore, auditSvc)

	secureCookies := cfg.Environment == "production"

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

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

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, secureCookies).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc, reportSvc, blobs, cfg.StorageBaseURL, cfg.StorageBucket, cfg.MaxUploadBytes, cfg.MaxDocumentBytes).RegisterRoutes(r)
		traininghandler.NewHandler(trainingSvc).RegisterRoutes(r)
		reporthandler.NewHandler(reportSvc, blobs).RegisterRoutes(r)
		notificationhandler.NewHandler(notificationSvc, auditSvc).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		supporthandler.NewHandler(supportSvc).RegisterRoutes(r)
	})

	// Uploaded objects are served straight off disk. Download URLs are
	// shaped {base}/{bucket}/{key}, so the bucket segment is stripped
	// along with the prefix. Object keys carry a random token, keeping
	// the URLs unguessable.
	uploadsPrefix := "/uploads/" + cfg.StorageBucket + "/"
	router.Mount("/uploads/", http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(cfg.StorageDir))))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("skills audit portal listening", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
