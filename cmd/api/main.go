// @title Quiz Tutor API
// @version 1.0
// @description Serves quiz questions and scores submitted answers.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:5000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-tutor/cmd/api/docs"
	"quiz-tutor/internal/adapter"
	"quiz-tutor/internal/cache"
	"quiz-tutor/internal/config"
	"quiz-tutor/internal/database"
	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/handler"
	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/metrics"
	"quiz-tutor/internal/middleware"
	"quiz-tutor/internal/repository"
	"quiz-tutor/internal/scoring"
	"quiz-tutor/internal/server"
	"quiz-tutor/internal/service"
	"quiz-tutor/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXDB(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))

	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	var (
		questionCache domain.QuestionCache
		redisClient   *redis.Client
	)
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Question cache disabled, Redis unreachable", zap.Error(err))
		} else {
			defer redisClient.Close()
			questionCache = adapter.NewRedisQuestionCache(redisClient)
		}
	}

	policy, err := scoring.ParseDuplicatePolicy(cfg.Scoring.DuplicatePolicy)
	if err != nil {
		appLogger.Fatal("Invalid scoring configuration", zap.Error(err))
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	questionService := service.NewQuestionService(questionRepository, questionCache, cfg.Cache.QuestionsTTL, appMetrics)
	quizService := service.NewQuizService(questionService, policy, appMetrics)

	quizHandler := handler.NewQuizHandler(questionService, quizService, validation.NewValidatorFromConfig(cfg.API), cfg.API.ExposeCorrectAnswers)
	healthHandler := handler.NewHealthHandler(questionService)

	var submitLimiter *middleware.RateLimiter
	if cfg.API.SubmitRateLimit > 0 {
		submitLimiter = middleware.NewRateLimiter(cfg.API.SubmitRateLimit, cfg.API.SubmitRateWindow, appMetrics)
		defer submitLimiter.Close()
	}

	app := server.New(server.Deps{
		Config:        cfg,
		QuizHandler:   quizHandler,
		HealthHandler: healthHandler,
		Metrics:       appMetrics,
		Gatherer:      prometheus.DefaultGatherer,
		SubmitLimiter: submitLimiter,
		EnableSwagger: cfg.Logger.Env != "production",
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.Bool("question_cache", questionCache != nil),
			zap.String("duplicate_policy", string(policy)),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
