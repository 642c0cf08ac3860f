package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saran8796/survey-application/internal/cache"
	"github.com/saran8796/survey-application/internal/config"
	"github.com/saran8796/survey-application/internal/repository"
	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest"
	"github.com/saran8796/survey-application/internal/transport/ws"
)

// @title Survey Application API
// @version 1.0
// @description Create surveys, collect responses and view results.
// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Error("failed to ping MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to MongoDB", "database", cfg.MongoDatabase)

	db := mongoClient.Database(cfg.MongoDatabase)
	idxCtx, idxCancel := context.WithTimeout(ctx, 30*time.Second)
	defer idxCancel()
	if err := repository.EnsureIndexes(idxCtx, db); err != nil {
		logger.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it surveys are always read from MongoDB
	var surveyCache cache.SurveyCache = cache.NopSurveyCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Warn("redis unavailable, survey cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			surveyCache = cache.NewSurveyCache(rdb, cfg.SurveyCacheTTL)
			logger.Info("connected to Redis", "addr", cfg.RedisAddr)
		}
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo, userRepo, surveyCache)
	responseSvc := service.NewResponseService(responseRepo, surveySvc)
	resultsSvc := service.NewResultsService(responseSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		Config:          cfg,
		Logger:          logger,
		AuthService:     authSvc,
		SurveyService:   surveySvc,
		ResponseService: responseSvc,
		ResultsService:  resultsSvc,
		WSHub:           wsHub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ListenAndServe", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
