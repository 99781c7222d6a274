package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camp-aid/campaid-backend/api/routes"
	"github.com/camp-aid/campaid-backend/internal/config"
	"github.com/camp-aid/campaid-backend/internal/handlers"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	mongorepo "github.com/camp-aid/campaid-backend/internal/repositories/mongodb"
	"github.com/camp-aid/campaid-backend/internal/services"
	mongodb "github.com/camp-aid/campaid-backend/pkg/mongodb"
	"github.com/camp-aid/campaid-backend/pkg/paygateway"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// Local development convenience; deployment injects real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT_SECRET is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.OpTimeout)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var campRepo repositories.CampRepository = mongorepo.NewCampRepository(db)
	var regRepo repositories.RegistrationRepository = mongorepo.NewRegistrationRepository(db)
	var paymentRepo repositories.PaymentRepository = mongorepo.NewPaymentRepository(db)
	var feedbackRepo repositories.FeedbackRepository = mongorepo.NewFeedbackRepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)

	// The unique compound indexes are the duplicate guards the workflow
	// relies on; refusing to start without them is safer than running open.
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), cfg.MongoDB.OpTimeout)
	defer cancelIndex()
	if err := regRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("failed to ensure registration indexes", "error", err)
		os.Exit(1)
	}
	if err := feedbackRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("failed to ensure feedback indexes", "error", err)
		os.Exit(1)
	}
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("failed to ensure user indexes", "error", err)
		os.Exit(1)
	}

	gateway := paygateway.NewClient(cfg.Payment.GatewayURL, cfg.Payment.APIKey, cfg.Payment.MockGateway)

	// Services
	registrationService := services.NewRegistrationService(campRepo, regRepo)
	paymentService := services.NewPaymentService(regRepo, paymentRepo, gateway, cfg.Payment.Currency)
	feedbackService := services.NewFeedbackService(feedbackRepo, campRepo)
	campService := services.NewCampService(campRepo)
	authService := services.NewAuthService(userRepo, cfg)

	workflow := services.NewWorkflow(registrationService, paymentService, feedbackService, campService)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		CampHandler:         handlers.NewCampHandler(campService),
		RegistrationHandler: handlers.NewRegistrationHandler(workflow),
		PaymentHandler:      handlers.NewPaymentHandler(workflow),
		FeedbackHandler:     handlers.NewFeedbackHandler(workflow),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Optional periodic reconciliation of the participant counters. The
	// on-demand admin endpoint works regardless.
	stopReconcile := make(chan struct{})
	if cfg.Reconcile.Interval > 0 {
		go runReconcileLoop(registrationService, cfg.Reconcile.Interval, stopReconcile)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")
	close(stopReconcile)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func runReconcileLoop(registrations services.RegistrationService, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			corrected, err := registrations.ReconcileParticipants(ctx)
			cancel()
			if err != nil {
				slog.Error("reconciliation pass failed", "error", err)
				continue
			}
			if corrected > 0 {
				slog.Warn("reconciliation corrected counters", "camps", corrected)
			}
		case <-stop:
			return
		}
	}
}
