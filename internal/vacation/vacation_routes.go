package vacation

import (
	"github.com/killerdias/controle-ferias/internal/auth"
	"github.com/killerdias/controle-ferias/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	vacations := r.Group("")
	vacations.Use(middleware.AuthMiddleware())
	vacations.Use(middleware.ContextLogger(logger))
	{
		vacations.GET("/employees/:id/vacations",
			middleware.RateLimitByUser(3, 10),
			handler.ListByEmployee,
		)

		vacations.POST("/employees/:id/vacations",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Create,
		)

		vacations.GET("/vacations/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)

		vacations.PUT("/vacations/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Update,
		)

		vacations.DELETE("/vacations/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Delete,
		)
	}
}
