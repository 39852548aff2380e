package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/unbiaslab/unbias-backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins      []string
	TheoryHandler     *handlers.TheoryHandler
	CitationHandler   *handlers.CitationHandler
	ProvenanceHandler *handlers.ProvenanceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("unbias-backend"))

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Theories
		api.POST("/theories", cfg.TheoryHandler.CreateTheory)
		api.GET("/theories", cfg.TheoryHandler.ListTheories)
		api.GET("/theories/:id", cfg.TheoryHandler.GetTheory)
		api.PUT("/theories/:id", cfg.TheoryHandler.UpdateTheory)
		api.DELETE("/theories/:id", cfg.TheoryHandler.DeleteTheory)
		// Citations
		api.POST("/theories/:id/citations", cfg.CitationHandler.AddCitation)
		api.POST("/citations/validate", cfg.CitationHandler.ValidateCitation)
		// Read-only analysis artifacts
		api.GET("/theories/:id/assumptions", cfg.TheoryHandler.ListAssumptions)
		api.GET("/theories/:id/contradictions", cfg.TheoryHandler.ListContradictions)
		// Provenance
		api.GET("/theories/:id/provenance", cfg.ProvenanceHandler.GetTheoryProvenance)
	}

	return router
}
