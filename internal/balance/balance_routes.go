package balance

import (
	"github.com/killerdias/controle-ferias/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	balances := r.Group("/employees/:id")
	balances.Use(middleware.AuthMiddleware())
	balances.Use(middleware.ContextLogger(logger))
	{
		balances.GET("/balances/day-off",
			middleware.RateLimitByUser(3, 10),
			handler.DayOffBalance,
		)

		balances.GET("/balances/vacation",
			middleware.RateLimitByUser(3, 10),
			handler.VacationBalance,
		)

		balances.GET("/summaries/day-off",
			middleware.RateLimitByUser(3, 10),
			handler.DayOffSummary,
		)

		balances.GET("/summaries/vacation",
			middleware.RateLimitByUser(3, 10),
			handler.VacationSummary,
		)
	}
}
