package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostelflow/internal/config"
	"hostelflow/internal/database"
	"hostelflow/internal/domain/assistant"
	"hostelflow/internal/pkg/logger"
	"hostelflow/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	deps := server.Deps{Config: cfg, DB: db, Log: zlog}
	if cfg.GeminiAPIKey != "" {
		model, err := assistant.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.ChatModel, cfg.ChatTemperature)
		if err != nil {
			zlog.Fatal("chat model init failed", zap.Error(err))
		}
		defer func() { _ = model.Close() }()
		deps.ChatModel = model
	} else {
		zlog.Warn("GEMINI_API_KEY is empty, chat endpoint will answer with the fallback reply")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server started", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}
