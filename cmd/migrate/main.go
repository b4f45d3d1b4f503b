package main

import (
	"context"
	"flag"
	"log"

	"quiz-tutor/internal/config"
	"quiz-tutor/internal/database"
	"quiz-tutor/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
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

	ctx := context.Background()
	db, err := database.NewSQLXDB(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	dir := database.Up
	if *down {
		dir = database.Down
	}

	if err := database.RunMigrations(ctx, db.DB, cfg.DB.Driver, dir); err != nil {
		l.Fatal("Failed to run migrations", zap.String("direction", string(dir)), zap.Error(err))
	}
	l.Info("Migrations finished", zap.String("driver", cfg.DB.Driver), zap.String("direction", string(dir)))
}
