package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/localstore"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/notification"
	"github.com/storefront/backend/internal/infrastructure/remotecart"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront cart service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Guest cart persistence
	guestStore, err := localstore.NewRedisStore(localstore.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := guestStore.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Commerce platform cart API client
	remoteClient, err := remotecart.NewClient(&remotecart.Config{
		BaseURL:        cfg.RemoteCart.BaseURL,
		TimeoutSeconds: cfg.RemoteCart.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create remote cart client", zap.Error(err))
	}

	// Event bus with the cart activity audit handler
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(cartapp.NewActivityHandler(log))

	// Notifications go to the log and to the per-request collector that
	// feeds the response envelope
	notifier := notification.NewFanout(
		notification.NewZapNotifier(log),
		notification.NewContextNotifier(),
	)

	// Application service
	cartService := cartapp.NewService(guestStore, remoteClient, notifier, eventBus, log)

	// Session plumbing
	jwtService := auth.NewJWTService(cfg.JWT)
	sessionSignal := auth.NewSessionSignal()
	sessionMiddleware := middleware.NewSession(jwtService, sessionSignal, cartService, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinRecovery(log))
	engine.Use(logger.GinLogger(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(guestStore))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(sessionMiddleware.Handler())
	r.Register(handler.NewCartHandler(cartService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports service liveness and the guest store connection
func healthHandler(store *localstore.RedisStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"redis":  "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"redis":  "ok",
		})
	}
}
