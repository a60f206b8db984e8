package app

import (
	"github.com/killerdias/controle-ferias/internal/auth"
	"github.com/killerdias/controle-ferias/internal/balance"
	"github.com/killerdias/controle-ferias/internal/dayoff"
	"github.com/killerdias/controle-ferias/internal/employee"
	"github.com/killerdias/controle-ferias/internal/middleware"
	"github.com/killerdias/controle-ferias/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules wires repositories, services, handlers and routes for
// every module. It returns the auth service so the caller can seed the
// admin account.
func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) auth.Service {
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, logger)
	authHandler := auth.NewHandler(authService, logger)
	auth.RegisterRoutes(api, authHandler, logger)

	vacationRepo := vacation.NewRepository(db)
	dayoffRepo := dayoff.NewRepository(db)
	employeeRepo := employee.NewRepository(db)

	employeeService := employee.NewService(db, employeeRepo, vacationRepo, dayoffRepo, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employee.RegisterRoutes(api, employeeHandler, logger)

	vacationService := vacation.NewService(db, vacationRepo, logger)
	vacationHandler := vacation.NewHandler(vacationService, logger)
	vacation.RegisterRoutes(api, vacationHandler, logger)

	dayoffService := dayoff.NewService(db, dayoffRepo, logger)
	dayoffHandler := dayoff.NewHandlerWithRedis(dayoffService, rdb, logger)
	dayoff.RegisterRoutes(api, dayoffHandler, rdb, logger)

	balanceService := balance.NewService(employeeRepo, vacationRepo, dayoffRepo, logger)
	balanceHandler := balance.NewHandler(balanceService, logger)
	balance.RegisterRoutes(api, balanceHandler, logger)

	return authService
}
