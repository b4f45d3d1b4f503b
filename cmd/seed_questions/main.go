package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quiz-tutor/internal/adapter"
	"quiz-tutor/internal/cache"
	"quiz-tutor/internal/config"
	"quiz-tutor/internal/database"
	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/repository"
	"quiz-tutor/internal/seed"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "configs/seed_data/questions.yaml", "YAML or JSON file with the questions to insert")
	dryRun := flag.Bool("dry-run", false, "validate the file without touching the database")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	questions, err := seed.Load(*file)
	if err != nil {
		l.Fatal("Failed to load seed file", zap.String("file", *file), zap.Error(err))
	}
	l.Info("Seed file validated", zap.String("file", *file), zap.Int("questions", len(questions)))
	if *dryRun {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewSQLXDB(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewQuestionDatabaseAdapter(db)
	if err := repo.SaveQuestions(ctx, questions); err != nil {
		l.Fatal("Failed to insert questions", zap.Error(err))
	}
	l.Info("Questions inserted", zap.Int("count", len(questions)))

	if !cfg.Cache.Enabled {
		return
	}
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		l.Warn("Could not reach Redis, cached question list left as is", zap.Error(err))
		return
	}
	defer redisClient.Close()
	if err := adapter.NewRedisQuestionCache(redisClient).Invalidate(ctx); err != nil {
		l.Warn("Failed to invalidate cached question list", zap.Error(err))
		return
	}
	l.Info("Cached question list invalidated")
}
