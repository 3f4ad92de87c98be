package main

import (
	"log"

	"github.com/greenschool/zerowaste-backend/internal/config"
	"github.com/greenschool/zerowaste-backend/internal/db"
	"github.com/greenschool/zerowaste-backend/internal/jobs"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/greenschool/zerowaste-backend/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.WasteType{},
		&model.WasteRecord{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Notification{},
		&model.Session{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	runner := jobs.NewRunner(
		repository.NewSessionRepository(conn),
		repository.NewNotificationRepository(conn),
		logger,
	)
	if err := runner.Start(); err != nil {
		logger.Fatal("job runner failed", zap.Error(err))
	}
	defer runner.Stop()

	srv := server.New(conn, cfg, logger)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
