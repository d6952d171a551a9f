package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scalium-Tech/aligned/internal/ai"
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/api/routes"
	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/domain/challenge"
	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/Scalium-Tech/aligned/internal/domain/goal"
	"github.com/Scalium-Tech/aligned/internal/domain/journal"
	"github.com/Scalium-Tech/aligned/internal/domain/notification"
	"github.com/Scalium-Tech/aligned/internal/domain/user"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/cache"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/persistence/postgres/connection"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/scheduler"
	"github.com/Scalium-Tech/aligned/pkg/config"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/Scalium-Tech/aligned/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	metrics := middleware.NewMetricsMiddleware()
	router.Use(metrics.CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
			"X-Request-ID",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize the event bus
	bus := events.NewMemoryBus()

	// Initialize the key/value store behind the activity ledger and
	// challenge state. Redis keeps it durable across restarts; an
	// in-memory store is the fallback when Redis is unreachable in
	// development mode.
	var store localstore.Store
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		if cfg.Server.Mode == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, falling back to in-memory store", zap.Error(err))
		store = localstore.NewMemoryStore()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	}

	// With Redis available, every bus event is republished on the shared
	// channel so other instances see it, and the subscriber loop drops
	// cached responses for the affected user. Events from this instance
	// echo back through the same loop.
	if redisClient != nil {
		eventCtx, cancelEvents := context.WithCancel(context.Background())
		defer cancelEvents()

		bus.Subscribe("", func(event events.Event) {
			if err := redisClient.PublishEvent(eventCtx, event); err != nil {
				log.Warn("Failed to republish event to Redis", zap.String("event_type", event.EventType), zap.Error(err))
			}
		})
		bus.Subscribe(events.EventTypeDayRollover, func(events.Event) {
			redisClient.ResetCacheMetrics()
		})

		go func() {
			for {
				err := redisClient.SubscribeToEvents(eventCtx, func(event events.Event) error {
					if event.UserID == "" {
						return nil
					}
					if err := redisClient.InvalidateUserCache(eventCtx, event.UserID); err != nil {
						log.Warn("Failed to invalidate user cache", zap.String("user_id", event.UserID), zap.Error(err))
					}
					return nil
				})
				if eventCtx.Err() != nil {
					return
				}
				log.Warn("Redis event subscriber stopped, restarting", zap.Error(err))
				time.Sleep(time.Second)
			}
		}()
	}

	// Initialize logrus logger for the AI coach
	coachLogger := logrus.New()
	coachLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		coachLogger.SetLevel(logrus.InfoLevel)
	} else {
		coachLogger.SetLevel(logrus.DebugLevel)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	goalRepo := goal.NewRepository(db)
	journalRepo := journal.NewRepository(db)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryHours, cfg.Auth.JWTIssuer)
	activityService := activity.NewService(store, bus, log)
	challengeService := challenge.NewService(store, activityService, bus, log)
	userService := user.NewService(userRepo, activityService, jwtService, log)
	goalService := goal.NewService(goalRepo, bus, log)
	journalService := journal.NewService(journalRepo, bus, log)
	notificationService := notification.NewService(store, notification.NewLogDeliverer(log), log)
	migrator := localstore.NewMigrator(store, bus, log)

	aiClient := ai.NewClient(cfg.Coach, coachLogger)
	coach := ai.NewCoach(aiClient, coachLogger)

	// Initialize and start the scheduler
	sched := scheduler.NewScheduler(bus, notificationService, cfg.Reminders, log)
	sched.Start()
	log.Info("Scheduler started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService, migrator)
	challengeHandler := handlers.NewChallengeHandler(challengeService, activityService, journalService)
	goalHandler := handlers.NewGoalHandler(goalService)
	journalHandler := handlers.NewJournalHandler(journalService)
	dashboardHandler := handlers.NewDashboardHandler(activityService, challengeService, userService, coach, redisClient)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Register routes
	routes.SetupHealthRoutes(router)

	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered auth routes at /api/auth")

	routes.NewActivityRoutes(activityHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered activity routes at /api/activity")

	routes.NewChallengeRoutes(challengeHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered challenge routes at /api/challenges and /api/badges")

	routes.NewGoalRoutes(goalHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered goal routes at /api/goals")

	routes.NewJournalRoutes(journalHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered journal routes at /api/journal")

	routes.NewDashboardRoutes(dashboardHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered dashboard routes at /api/dashboard")

	routes.NewNotificationRoutes(notificationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered reminder routes at /api/reminders")

	// Cache health check
	if redisClient != nil {
		router.GET("/health/cache", func(c *gin.Context) {
			if err := redisClient.HealthCheck(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"component": "cache",
					"error":     err.Error(),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"component": "cache",
				"metrics":   redisClient.ExportMetrics(),
			})
		})
	}

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
