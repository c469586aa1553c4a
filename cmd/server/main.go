package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"scooter/internal/app"
	"scooter/internal/config"
	"scooter/internal/handler"
	"scooter/internal/logger"
	"scooter/internal/middleware"
	internalRedis "scooter/internal/redis"
	"scooter/internal/repository/memory"
	"scooter/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	nrApp, err := app.NewNewRelicApp(cfg.NewRelic)
	if err != nil {
		zl.Warn("New Relic disabled", zap.Error(err))
	} else if nrApp != nil {
		zl.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		zl.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Wire dependencies.
	server, tracker := wireServer(redisClient, nrApp, zl, cfg)

	// Start server in goroutine.
	go func() {
		zl.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	// Let running exports finish writing their files.
	if err := tracker.Wait(shutdownCtx); err != nil {
		zl.Warn("background operations still running at exit", zap.Error(err))
	}

	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	zl.Info("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server together
// with the operation tracker so shutdown can wait for background work.
func wireServer(redisClient *redis.Client, nrApp *newrelic.Application, zl *zap.Logger, cfg *config.Config) (*http.Server, *service.OperationTracker) {
	// Initialize repositories.
	scooterRepo := memory.NewScooterRepository()
	passengerRepo := memory.NewPassengerRepository()
	operationRepo := memory.NewOperationRepository()

	// Initialize services.
	scooterService := service.NewScooterService(scooterRepo)
	passengerService := service.NewPassengerService(passengerRepo)
	tracker := service.NewOperationTracker(operationRepo, zl.Named("operations"), nrApp)
	logService := service.NewLogService(cfg.Export.Dir, cfg.Export.Delay, zl.Named("export"))

	// Initialize handlers.
	scooterHandler := handler.NewScooterHandler(scooterService, passengerService)
	passengerHandler := handler.NewPassengerHandler(passengerService)
	logHandler := handler.NewLogHandler(tracker, logService, passengerService)

	var idempotencyStore middleware.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = internalRedis.NewIdempotencyStore(redisClient)
	}

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		ScooterHandler:   scooterHandler,
		PassengerHandler: passengerHandler,
		LogHandler:       logHandler,
		IdempotencyStore: idempotencyStore,
		NewRelicApp:      nrApp,
		Logger:           zl.Named("http"),
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		ExportDir:        cfg.Export.Dir,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, tracker
}
