package auth

import (
	"net/http"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
	"github.com/killerdias/controle-ferias/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			details := apperror.MapValidationError(ve)
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Dados de entrada inválidos", details)
			return
		}
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Corpo da requisição inválido", nil)
		return
	}

	access, refresh, err := h.service.Login(ctx, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", access, int(accessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("refresh_token", refresh, int(refreshTokenTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		var body struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Refresh token não informado", nil)
			return
		}
		refresh = body.RefreshToken
	}

	access, err := h.service.Refresh(ctx, refresh)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", access, int(accessTokenTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"access_token": access}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			details := apperror.MapValidationError(ve)
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Dados de entrada inválidos", details)
			return
		}
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Corpo da requisição inválido", nil)
		return
	}

	resp, err := h.service.Register(ctx, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Sessão inválida", nil)
		return
	}

	resp, err := h.service.GetMe(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Sessão encerrada"}, nil)
}
