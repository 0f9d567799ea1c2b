package main

import (
	"context"
	"log"
	"strings"

	"hostelflow/internal/config"
	"hostelflow/internal/database"
	"hostelflow/internal/domain/auth"
	"hostelflow/internal/domain/catalog"
	"hostelflow/internal/pkg/logger"
	"hostelflow/internal/server"

	"go.uber.org/zap"
)

// seed migrates the schema, creates the predefined catalog and, when
// ADMIN_PASSWORD is set, an admin account. Running it twice is safe.
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

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	ctx := context.Background()

	created, err := catalog.NewRepository(db).Seed(ctx)
	if err != nil {
		zlog.Fatal("seed catalog failed", zap.Error(err))
	}
	zlog.Info("catalog seeded", zap.Int("created", created))

	if strings.TrimSpace(cfg.AdminPassword) == "" {
		zlog.Info("ADMIN_PASSWORD is empty, skipping admin account")
		return
	}

	users := auth.NewUserRepository(db)
	exists, err := users.ExistsByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		zlog.Fatal("check admin failed", zap.Error(err))
	}
	if exists {
		zlog.Info("admin already exists", zap.String("email", cfg.AdminEmail))
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		zlog.Fatal("hash admin password failed", zap.Error(err))
	}
	admin := &auth.User{
		Email:        cfg.AdminEmail,
		Username:     "admin",
		Name:         "Administrator",
		RoomNumber:   "-",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		zlog.Fatal("create admin failed", zap.Error(err))
	}
	zlog.Info("admin created", zap.String("email", admin.Email), zap.Int64("id", admin.ID))
}
