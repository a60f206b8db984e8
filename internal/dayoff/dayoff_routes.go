package dayoff

import (
	"github.com/killerdias/controle-ferias/internal/auth"
	"github.com/killerdias/controle-ferias/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	dayoffs := r.Group("")
	dayoffs.Use(middleware.AuthMiddleware())
	dayoffs.Use(middleware.ContextLogger(logger))
	{
		dayoffs.GET("/employees/:id/day-off-grants",
			middleware.RateLimitByUser(3, 10),
			handler.ListGrants,
		)

		dayoffs.POST("/employees/:id/day-off-grants",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			middleware.Idempotency(rdb),
			handler.Grant,
		)

		dayoffs.GET("/employees/:id/day-off-requests",
			middleware.RateLimitByUser(3, 10),
			handler.ListRequests,
		)

		dayoffs.POST("/employees/:id/day-off-requests",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			middleware.Idempotency(rdb),
			handler.Request,
		)

		dayoffs.POST("/day-off-requests/:id/confirm",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Confirm,
		)
	}
}
