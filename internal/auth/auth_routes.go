package auth

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
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.ContextLogger(logger))
	{
		authGroup.POST("/login",
			middleware.RateLimitByIP(1, 5),
			handler.Login,
		)

		authGroup.POST("/refresh",
			middleware.RateLimitByIP(1, 5),
			handler.Refresh,
		)

		authGroup.POST("/logout", handler.Logout)

		authGroup.GET("/me",
			middleware.AuthMiddleware(),
			handler.Me,
		)

		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(RoleAdmin),
			handler.Register,
		)
	}
}
