package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"story-server/internal/config"
	ws "story-server/internal/delivery/websocket"
	"story-server/internal/handler"
	"story-server/internal/logger"
	"story-server/internal/middleware"
	"story-server/internal/repository"
	"story-server/internal/service"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	log.Info("Configuration loaded", zap.String("environment", cfg.Environment))

	// --- Dependency Injection ---
	// The store is in-memory for the process lifetime; a restart resets it
	// to the seed records.
	storyRepo := repository.NewMemoryStoryRepository(repository.SeedStories()...)

	wsManager := ws.NewManager(log)
	wsManager.Start()

	storySvc := service.NewStoryService(storyRepo, wsManager, log)
	storyHandler := handler.NewStoryHandler(storySvc, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if !cfg.IsProduction() {
		gin.SetMode(gin.DebugMode)
	}

	router := setupRouter(cfg, log, storyHandler, wsManager)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
}

// setupRouter assembles the middleware chain and routes. The prometheus
// middleware must be installed before the routes are registered: Gin
// snapshots each route's handler chain at registration time.
func setupRouter(cfg *config.Config, log *zap.Logger, storyHandler *handler.StoryHandler, wsManager *ws.Manager) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(handler.Recovery(log, cfg.Environment))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	router.GET("/ws", wsManager.Handler())
	storyHandler.RegisterRoutes(router)

	return router
}
