package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/oy2/quicktalk/cmd/api/router/v1"
	"github.com/oy2/quicktalk/internal/config"
	"github.com/oy2/quicktalk/internal/infrastructure/database"
	notifyadapter "github.com/oy2/quicktalk/internal/infrastructure/notify/adapter"
	queueadapter "github.com/oy2/quicktalk/internal/infrastructure/queue/adapter"
	"github.com/oy2/quicktalk/internal/infrastructure/realtime"
	"github.com/oy2/quicktalk/internal/pkg/chat/application/task"
	"github.com/oy2/quicktalk/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Environment variables may be provided directly.
		_ = err
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Notification pipeline: HTTP handlers enqueue, the asynq worker
	// publishes to redis, the subscriber feeds local websocket sessions.
	publisher, err := notifyadapter.NewRedisPublisher(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer publisher.Close()

	queueClient, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue client")
	}
	defer queueClient.Close()

	queueServer, err := queueadapter.NewAsynqServer(cfg.RedisURL, cfg.AsynqConcurrency)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue server")
	}
	task.RegisterNotifyNewMessageTask(queueServer, publisher)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("queue server stopped")
		}
	}()

	rt := realtime.NewRouter()
	defer rt.Close()

	subscriber, err := notifyadapter.NewSubscriber(cfg.RedisURL, rt)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create notification subscriber")
	}
	defer subscriber.Close()
	go func() {
		if err := subscriber.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("notification subscriber stopped")
		}
	}()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, queueClient, rt)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server error")
	}
}
