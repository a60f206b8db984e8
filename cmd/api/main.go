package main

import (
	"log"
	"os"
	"time"

	"github.com/killerdias/controle-ferias/internal/app"
	"github.com/killerdias/controle-ferias/internal/bootstrap"
	"github.com/killerdias/controle-ferias/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	router := gin.Default()

	application, err := app.BuildApp(router, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := application.DB.DB(); err == nil {
			sqlDB.Close()
		}
		application.Redis.Close()
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
}
