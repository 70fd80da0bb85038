package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/config"
	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/logger"
	"github.com/harshsongara/timetable/internal/queue"
	"github.com/harshsongara/timetable/internal/workers"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required for the notification worker")
	}

	debugMode := cfg.WorkerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_worker", zap.Bool("debug_mode", debugMode))

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

	jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq", zap.Error(err))
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_rabbitmq", zap.Int("prefetch", cfg.RabbitMQPrefetch))

	userRepo := database.NewUserRepository(db)
	notifier := workers.NewNotifier(userRepo, jobQueue, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	msgChan, errChan, err := jobQueue.Consume(ctx, cfg.RabbitMQPrefetch)
	if err != nil {
		zapLogger.Fatal("failed_to_start_consuming", zap.Error(err))
	}

	zapLogger.Info("worker_started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgChan:
				if !ok {
					zapLogger.Info("message_channel_closed")
					return
				}
				if err := notifier.ProcessJob(ctx, msg); err != nil {
					zapLogger.Error("failed_to_process_job",
						zap.String("job_id", msg.Job.ID.String()),
						zap.String("job_type", string(msg.Job.Type)),
						zap.Error(err),
					)
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errChan:
				if !ok {
					return
				}
				zapLogger.Error("queue_error", zap.Error(err))
			}
		}
	}()

	<-sigChan
	zapLogger.Info("shutdown_signal_received")
	cancel()
	zapLogger.Info("worker_stopped")
}
