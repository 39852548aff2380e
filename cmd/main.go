package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/unbiaslab/unbias-backend/internal/cache"
	"github.com/unbiaslab/unbias-backend/internal/db"
	"github.com/unbiaslab/unbias-backend/internal/handlers"
	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/observability"
	"github.com/unbiaslab/unbias-backend/internal/repos"
	"github.com/unbiaslab/unbias-backend/internal/server"
	"github.com/unbiaslab/unbias-backend/internal/services"
	"github.com/unbiaslab/unbias-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "unbias-backend",
		Environment: logMode,
		Version:     "1.0.0",
	})
	if shutdownOTel != nil {
		defer func() { _ = shutdownOTel(context.Background()) }()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Cache (Redis, or in-process fallback when unreachable)
	theCache := cache.New(log)

	// Repos
	log.Info("Setting up Repos from main...")
	theoryRepo := repos.NewTheoryRepo(thePG, log)
	citationRepo := repos.NewCitationRepo(thePG, log)
	provenanceRepo := repos.NewProvenanceRepo(thePG, log)
	assumptionRepo := repos.NewAssumptionRepo(thePG, log)
	contradictionRepo := repos.NewContradictionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	validationClient := services.NewValidationClient(log, theCache, services.ValidationConfigFromEnv(log))
	provenanceService := services.NewProvenanceService(thePG, log, provenanceRepo)
	theoryService := services.NewTheoryService(thePG, log, theoryRepo, citationRepo, provenanceRepo, assumptionRepo, contradictionRepo, provenanceService)
	citationService := services.NewCitationService(thePG, log, theoryRepo, citationRepo, validationClient, provenanceService)

	// Handlers
	theoryHandler := handlers.NewTheoryHandler(log, theoryService)
	citationHandler := handlers.NewCitationHandler(log, citationService)
	provenanceHandler := handlers.NewProvenanceHandler(log, provenanceService)

	// Router
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000", log)
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:      splitOrigins(corsOrigins),
		TheoryHandler:     theoryHandler,
		CitationHandler:   citationHandler,
		ProvenanceHandler: provenanceHandler,
	})

	port := utils.GetEnv("PORT", "8000", log)
	log.Info("Starting HTTP server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
