package balance

import (
	"net/http"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
	"github.com/killerdias/controle-ferias/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) DayOffBalance(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http day-off balance", zap.String("employee_id", employeeID))

	resp, err := h.service.DayOffBalance(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) VacationBalance(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http vacation balance", zap.String("employee_id", employeeID))

	resp, err := h.service.VacationBalance(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DayOffSummary(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http day-off summary", zap.String("employee_id", employeeID))

	resp, err := h.service.DayOffSummary(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) VacationSummary(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http vacation summary", zap.String("employee_id", employeeID))

	resp, err := h.service.VacationSummary(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
