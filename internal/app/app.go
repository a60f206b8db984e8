package app

import (
	"context"
	"fmt"
	"os"

	"github.com/killerdias/controle-ferias/internal/auth"
	"github.com/killerdias/controle-ferias/internal/dayoff"
	"github.com/killerdias/controle-ferias/internal/employee"
	"github.com/killerdias/controle-ferias/internal/shared/connection"
	"github.com/killerdias/controle-ferias/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BuildApp connects the backing stores, migrates the schema, seeds the
// admin account and mounts every module under /api/v1.
func BuildApp(router *gin.Engine, logger *zap.Logger) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "controle_ferias"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		5,
	)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&vacation.VacationRecord{},
		&dayoff.Grant{},
		&dayoff.Request{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(envOr("REDIS_ADDR", "localhost:6379"), 5)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	authService := registerModules(router, db, rdb, logger)

	if err := authService.EnsureAdmin(context.Background()); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	return &App{DB: db, Redis: rdb}, nil
}
