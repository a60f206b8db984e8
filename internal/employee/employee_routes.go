package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		employees.GET("/:id/detail",
			middleware.RateLimitByUser(3, 10),
			handler.GetDetail,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Delete,
		)
	}
}
