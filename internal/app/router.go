package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"scooter/internal/docs"
	"scooter/internal/handler"
	"scooter/internal/middleware"
)

// ExportURLPrefix is where finished exports can be downloaded.
const ExportURLPrefix = "/static/log"

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ScooterHandler   *handler.ScooterHandler
	PassengerHandler *handler.PassengerHandler
	LogHandler       *handler.LogHandler
	IdempotencyStore middleware.IdempotencyStore // nil disables idempotency keys
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
	AllowedOrigins   []string
	ExportDir        string // served under ExportURLPrefix when set
}

// NewRouter creates a new Gin router with all routes registered.
// Routes are served both at the root and under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore, logger))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API docs; the root redirects to the Swagger UI.
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/api/docs/")
	})
	handle(&router.RouterGroup, http.MethodGet, docs.SchemaPath, docs.Schema)
	handle(&router.RouterGroup, http.MethodGet, "/api/docs/", docs.UI)

	if deps.ExportDir != "" {
		router.Static(ExportURLPrefix, deps.ExportDir)
	}

	registerRoutes(router.Group(""), deps)
	registerRoutes(router.Group("/api/v1"), deps)

	return router
}

func registerRoutes(rg *gin.RouterGroup, deps RouterDeps) {
	// Scooter routes.
	handle(rg, http.MethodGet, "/scooter/", deps.ScooterHandler.Create)
	handle(rg, http.MethodGet, "/scooter/all", deps.ScooterHandler.List)
	handle(rg, http.MethodPost, "/scooter/occupy/", deps.ScooterHandler.Occupy)
	handle(rg, http.MethodPost, "/scooter/vacant/", deps.ScooterHandler.Vacate)
	handle(rg, http.MethodGet, "/scooter/broken/", deps.ScooterHandler.GetBroken)
	handle(rg, http.MethodPost, "/scooter/broken/", deps.ScooterHandler.MarkBroken)

	// Passenger routes.
	handle(rg, http.MethodPost, "/passenger/", deps.PassengerHandler.Register)

	// Log export routes.
	handle(rg, http.MethodGet, "/log/", deps.LogHandler.StartExport)
	handle(rg, http.MethodGet, "/log/status", deps.LogHandler.Status)
}

// handle registers path with and without a trailing slash so neither form
// gets redirected.
func handle(rg *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
	trimmed := strings.TrimSuffix(path, "/")
	rg.Handle(method, trimmed, h)
	rg.Handle(method, trimmed+"/", h)
}
