package dayoff

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
	"github.com/killerdias/controle-ferias/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// idempotencyCacheTTL bounds how long a completed mutation keeps answering
// retries that reuse the same Idempotency-Key.
const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dayoff.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dayoff.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

// releaseIdempotencyLock drops the in-flight lock taken by the idempotency
// middleware. Deferred by the mutating handlers so the lock never outlives
// the request, success or failure.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		_ = h.rdb.Del(c.Request.Context(), lk).Err()
	}
}

// cacheIdempotentResponse stores the successful payload so a retry with the
// same Idempotency-Key replays it instead of re-running the mutation.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err(); err != nil {
		h.logger.Warn("idempotency cache write failed", zap.Error(err))
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("day-off request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Grant(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	employeeID := c.Param("id")
	h.logger.Debug("http grant days off", zap.String("employee_id", employeeID))
	var req CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http grant days off validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados de entrada inválidos", err.Error())
		return
	}

	resp, err := h.service.Grant(c.Request.Context(), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListGrants(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http list day-off grants", zap.String("employee_id", employeeID))

	resp, err := h.service.ListGrants(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Request(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	employeeID := c.Param("id")
	h.logger.Debug("http request day off", zap.String("employee_id", employeeID))
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http request day off validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados de entrada inválidos", err.Error())
		return
	}

	resp, err := h.service.Request(c.Request.Context(), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListRequests(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("id")
	h.logger.Debug("http list day-off requests", zap.String("employee_id", employeeID))

	resp, err := h.service.ListRequests(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := c.Param("id")
	h.logger.Debug("http confirm day off", zap.String("request_id", requestID))

	resp, err := h.service.Confirm(ctx, requestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
