package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/credmatch/backend/internal/config"
	"github.com/credmatch/backend/internal/handler"
	"github.com/credmatch/backend/internal/repository"
	"github.com/credmatch/backend/internal/scheduler"
	"github.com/credmatch/backend/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	institutionRepo := repository.NewInstitutionRepository(db)
	standardModalityRepo := repository.NewStandardModalityRepository(db)
	mappingRepo := repository.NewModalityMappingRepository(db)
	creditModalityRepo := repository.NewCreditModalityRepository(db)
	offerRepo := repository.NewCreditOfferRepository(db)

	// Modality mapping cache: redis when enabled, no-op otherwise
	var mappingCache repository.MappingCache = repository.NoopMappingCache{}
	if cfg.RedisEnabled {
		mappingCache = repository.NewRedisMappingCache(cfg.RedisAddr)
	}

	// Initialize services
	discoveryService := service.NewModalityDiscoveryService(standardModalityRepo, mappingRepo, mappingCache)
	normalizationService := service.NewOfferNormalizationService(discoveryService, institutionRepo, creditModalityRepo)
	rankingService := service.NewOfferRankingService(standardModalityRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg.CPFAllowSandbox)
	offerHandler := handler.NewOfferHandler(normalizationService, rankingService, offerRepo, cfg.CPFAllowSandbox)
	loanHandler := handler.NewLoanHandler()

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	// CORS - allow frontend origin from env or default
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/api/auth/token", authHandler.IssueToken)

	// Loan simulation (public - pure computation, no customer data)
	r.Get("/api/loans/simulate", loanHandler.Simulate)
	r.Get("/api/loans/affordability", loanHandler.Affordability)
	r.Post("/api/loans/compare", loanHandler.Compare)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		// Offer ingestion
		r.Post("/api/offers/ingest", offerHandler.Ingest)

		// Customer offers
		r.Get("/api/customers/{cpf}/offers", offerHandler.List)
		r.Get("/api/customers/{cpf}/offers/ranked", offerHandler.Ranked)
		r.Get("/api/customers/{cpf}/offers/ranked-by-cost", offerHandler.RankedByCost)
	})

	// Initialize and start the offer expiry scheduler
	var expiryScheduler *scheduler.Scheduler
	if cfg.ExpiryEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.ExpirySchedule,
			OfferTTL: cfg.OfferTTL,
			Timeout:  cfg.ExpiryTimeout,
			Enabled:  cfg.ExpiryEnabled,
		}
		expiryScheduler = scheduler.New(schedCfg, offerRepo, logger)
		if err := expiryScheduler.Start(); err != nil {
			logger.Error("Failed to start expiry scheduler", slog.String("error", err.Error()))
		} else {
			logger.Info("Expiry scheduler started",
				slog.String("schedule", cfg.ExpirySchedule),
				slog.Duration("offer_ttl", cfg.OfferTTL),
			)
		}
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if expiryScheduler != nil {
			ctx := expiryScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
