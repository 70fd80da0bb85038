package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/config"
	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/gamification"
	"github.com/harshsongara/timetable/internal/handlers"
	"github.com/harshsongara/timetable/internal/logger"
	"github.com/harshsongara/timetable/internal/middleware"
	"github.com/harshsongara/timetable/internal/queue"
	"github.com/harshsongara/timetable/internal/services/token"
	"github.com/harshsongara/timetable/internal/telemetry"
)

const serviceName = "timetable-api"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("notifications_enabled", cfg.RabbitMQURL != ""),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry is optional and config-gated.
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisLimiter.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	// RabbitMQ is optional: without it the server runs with achievement
	// notifications disabled.
	var jobQueue queue.JobQueue
	if cfg.RabbitMQURL != "" {
		jobQueue = connectQueue(cfg.RabbitMQURL, zapLogger)
		if jobQueue != nil {
			defer func() {
				if err := jobQueue.Close(); err != nil {
					zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
				}
			}()
		}
	} else {
		zapLogger.Warn("rabbitmq_not_configured_notifications_disabled")
	}

	userRepo := database.NewUserRepository(db)
	taskRepo := database.NewTaskRepository(db)
	achievementRepo := database.NewAchievementRepository(db)

	tokens, err := token.NewService(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		zapLogger.Fatal("failed_to_create_token_service", zap.Error(err))
	}

	engine := gamification.NewEngine(userRepo, achievementRepo, taskRepo, zapLogger)

	authHandler := handlers.NewAuthHandler(userRepo, tokens, zapLogger)
	taskHandler := handlers.NewTaskHandler(taskRepo, engine, jobQueue, zapLogger)
	dashboardHandler := handlers.NewDashboardHandler(taskRepo, achievementRepo, engine, zapLogger)
	healthChecker := handlers.NewHealthChecker(db, redisLimiter, jobQueue)

	r := mux.NewRouter()

	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(redisLimiter, cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	authMW := middleware.Auth(userRepo, tokens, zapLogger)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	authRouter := apiRouter.PathPrefix("/auth").Subrouter()

	publicAuthRouter := authRouter.PathPrefix("").Subrouter()
	publicAuthRouter.Use(rateLimitMW)
	authHandler.RegisterPublicRoutes(publicAuthRouter)

	protectedAuthRouter := authRouter.PathPrefix("").Subrouter()
	protectedAuthRouter.Use(authMW)
	protectedAuthRouter.Use(rateLimitMW)
	authHandler.RegisterProtectedRoutes(protectedAuthRouter)

	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	tasksRouter.Use(authMW)
	tasksRouter.Use(rateLimitMW)
	taskHandler.RegisterRoutes(tasksRouter)

	dashboardRouter := apiRouter.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.Use(authMW)
	dashboardRouter.Use(rateLimitMW)
	dashboardHandler.RegisterRoutes(dashboardRouter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        corsHandler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// connectQueue dials RabbitMQ with exponential backoff to ride out broker
// startup delays. Returns nil when the broker never comes up; the server
// still serves requests without notifications.
func connectQueue(amqpURL string, zapLogger *zap.Logger) queue.JobQueue {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		time.Sleep(delay)
	}

	zapLogger.Error("failed_to_connect_to_rabbitmq_notifications_disabled",
		zap.Int("max_retries", maxRetries),
	)
	return nil
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
