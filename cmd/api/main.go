package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/config"
	"github.com/shift-agent/shift-agent/internal/auth"
	authhttp "github.com/shift-agent/shift-agent/internal/auth/http"
	authrepo "github.com/shift-agent/shift-agent/internal/auth/repository"
	authservice "github.com/shift-agent/shift-agent/internal/auth/service"
	"github.com/shift-agent/shift-agent/internal/bootstrap"
	"github.com/shift-agent/shift-agent/internal/gemini"
	"github.com/shift-agent/shift-agent/internal/logging"
	cronjob "github.com/shift-agent/shift-agent/internal/scheduling/cron"
	schedhttp "github.com/shift-agent/shift-agent/internal/scheduling/http"
	schedrepo "github.com/shift-agent/shift-agent/internal/scheduling/repository"
	schedservice "github.com/shift-agent/shift-agent/internal/scheduling/service"
	"github.com/shift-agent/shift-agent/internal/storage/postgres"
)

const serviceName = "shift-agent"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	// Database: database/sql for the repositories, pgxpool for health and evaluations.
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database), MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connected")

	rdb := bootstrap.NewRedisClient(&cfg.Redis)
	defer func() { _ = rdb.Close() }()
	if err := bootstrap.PingRedis(ctx, rdb); err != nil {
		logger.Warn("redis unavailable, principal cache disabled until it recovers", zap.Error(err))
	}

	firebaseAuth, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return err
	}
	if cfg.Firebase.WebAPIKey == "" {
		logger.Warn("FIREBASE_WEB_API_KEY not set, /login will fail")
	}

	// Auth
	userRepo := authrepo.NewUserRepository(db)
	principalCache := authrepo.NewPrincipalCache(rdb)
	signer := authservice.NewIdentityToolkitClient("", cfg.Firebase.WebAPIKey)
	authService := authservice.NewAuthService(userRepo, principalCache, firebaseAuth, signer)

	// Scheduling
	companyRepo := schedrepo.NewCompanyRepository(db)
	crewRepo := schedrepo.NewCrewRepository(db)
	shiftRepo := schedrepo.NewShiftRepository(db)

	companyService := schedservice.NewCompanyService(companyRepo)
	crewService := schedservice.NewCrewService(crewRepo, authService)
	shiftService := schedservice.NewShiftService(shiftRepo, crewRepo, companyRepo)

	// AI
	var geminiHandler *gemini.Handler
	var gen gemini.Generator
	if cfg.Gemini.APIKey != "" {
		g, err := gemini.NewGenAIGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		gen = g
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will answer 503")
	}
	geminiService := gemini.NewService(gen, companyService, crewService, shiftService, gemini.NewRepo(pool))
	geminiHandler = gemini.NewHandler(geminiService)

	scheduler := cronjob.NewScheduler(shiftService, cfg.App.PurgeSchedule, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthRateLimit:  cfg.Server.AuthRateLimit,
		AuthRateBurst:  cfg.Server.AuthRateBurst,
		DB:             pool,
		Redis:          rdb,
		Registry:       registry,
		Verifier:       firebaseAuth,
		Resolver:       authService,
		Auth:           authhttp.New(authService, cfg.App.Environment == "production"),
		Scheduling:     schedhttp.New(companyService, crewService, shiftService),
		Gemini:         geminiHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// AI generation can take close to two minutes
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
