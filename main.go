package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellinginfinity/app"
	"sellinginfinity/config"
	"sellinginfinity/database"
	"sellinginfinity/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	application, err := app.New(cfg, logger, db)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}
	if err := application.StartJobs(); err != nil {
		logger.Fatal("failed to start jobs", zap.Error(err))
	}

	server := application.Server()

	go func() {
		logger.Info("server is running", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := server.Listen(":" + cfg.App.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	application.Close()
}
