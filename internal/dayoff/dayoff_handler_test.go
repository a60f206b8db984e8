package dayoff_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/killerdias/controle-ferias/internal/dayoff"
	dayofferrors "github.com/killerdias/controle-ferias/internal/dayoff/errors"
	"github.com/killerdias/controle-ferias/internal/middleware"
	"github.com/killerdias/controle-ferias/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeDayOffService struct {
	GrantFn        func(ctx context.Context, employeeID string, req dayoff.CreateGrantRequest) (dayoff.GrantResponse, error)
	ListGrantsFn   func(ctx context.Context, employeeID string) ([]dayoff.GrantResponse, error)
	RequestFn      func(ctx context.Context, employeeID string, req dayoff.CreateRequestRequest) (dayoff.RequestResponse, error)
	ListRequestsFn func(ctx context.Context, employeeID string) ([]dayoff.RequestResponse, error)
	ConfirmFn      func(ctx context.Context, requestID string) (dayoff.RequestResponse, error)
}

func (f *fakeDayOffService) Grant(ctx context.Context, employeeID string, req dayoff.CreateGrantRequest) (dayoff.GrantResponse, error) {
	return f.GrantFn(ctx, employeeID, req)
}
func (f *fakeDayOffService) ListGrants(ctx context.Context, employeeID string) ([]dayoff.GrantResponse, error) {
	return f.ListGrantsFn(ctx, employeeID)
}
func (f *fakeDayOffService) Request(ctx context.Context, employeeID string, req dayoff.CreateRequestRequest) (dayoff.RequestResponse, error) {
	return f.RequestFn(ctx, employeeID, req)
}
func (f *fakeDayOffService) ListRequests(ctx context.Context, employeeID string) ([]dayoff.RequestResponse, error) {
	return f.ListRequestsFn(ctx, employeeID)
}
func (f *fakeDayOffService) Confirm(ctx context.Context, requestID string) (dayoff.RequestResponse, error) {
	return f.ConfirmFn(ctx, requestID)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestDayOffHandler_Request(t *testing.T) {
	t.Run("insufficient balance returns 422", func(t *testing.T) {
		svc := &fakeDayOffService{
			RequestFn: func(ctx context.Context, employeeID string, req dayoff.CreateRequestRequest) (dayoff.RequestResponse, error) {
				return dayoff.RequestResponse{}, dayofferrors.ErrInsufficientBalance
			},
		}

		r := setupRouter()
		h := dayoff.NewHandler(svc)
		r.POST("/employees/:id/day-off-requests", h.Request)

		body := `{"date":"2025-02-01"}`
		req := httptest.NewRequest(http.MethodPost, "/employees/1/day-off-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInsufficientBalance)
		assert.Contains(t, w.Body.String(), "Não há folgas disponíveis para marcar")
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeDayOffService{
			RequestFn: func(ctx context.Context, employeeID string, req dayoff.CreateRequestRequest) (dayoff.RequestResponse, error) {
				assert.Equal(t, "1", employeeID)
				return dayoff.RequestResponse{ID: 11, EmployeeID: 1, Date: req.Date, Status: dayoff.StatusPending}, nil
			},
		}

		r := setupRouter()
		h := dayoff.NewHandler(svc)
		r.POST("/employees/:id/day-off-requests", h.Request)

		body := `{"date":"2025-02-01"}`
		req := httptest.NewRequest(http.MethodPost, "/employees/1/day-off-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), dayoff.StatusPending)
	})

	t.Run("missing date returns 400", func(t *testing.T) {
		r := setupRouter()
		h := dayoff.NewHandler(&fakeDayOffService{})
		r.POST("/employees/:id/day-off-requests", h.Request)

		req := httptest.NewRequest(http.MethodPost, "/employees/1/day-off-requests", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDayOffHandler_Request_IdempotentReplay(t *testing.T) {
	calls := 0
	svc := &fakeDayOffService{
		RequestFn: func(ctx context.Context, employeeID string, req dayoff.CreateRequestRequest) (dayoff.RequestResponse, error) {
			calls++
			return dayoff.RequestResponse{ID: 11, EmployeeID: 1, Date: req.Date, Status: dayoff.StatusPending}, nil
		},
	}

	rdb, mock := redismock.NewClientMock()

	r := setupRouter()
	h := dayoff.NewHandlerWithRedis(svc, rdb)
	r.POST("/employees/:id/day-off-requests",
		func(c *gin.Context) { c.Set("user_id", "1") },
		middleware.Idempotency(rdb),
		h.Request,
	)

	cacheKey := "idemp:/employees/:id/day-off-requests:1:req-2025-02-01"
	lockKey := cacheKey + ":lock"
	payload, _ := json.Marshal(dayoff.RequestResponse{ID: 11, EmployeeID: 1, Date: "2025-02-01", Status: dayoff.StatusPending})

	// First request runs the mutation, caches the payload and drops the lock.
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	body := `{"date":"2025-02-01"}`
	req := httptest.NewRequest(http.MethodPost, "/employees/1/day-off-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "req-2025-02-01")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)

	// A retry with the same key replays the stored payload; the service must
	// not run a second time.
	mock.ExpectGet(cacheKey).SetVal(string(payload))

	req2 := httptest.NewRequest(http.MethodPost, "/employees/1/day-off-requests", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Idempotency-Key", "req-2025-02-01")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"id":11`)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDayOffHandler_Confirm(t *testing.T) {
	t.Run("already taken returns 409", func(t *testing.T) {
		svc := &fakeDayOffService{
			ConfirmFn: func(ctx context.Context, requestID string) (dayoff.RequestResponse, error) {
				return dayoff.RequestResponse{}, dayofferrors.ErrAlreadyTaken
			},
		}

		r := setupRouter()
		h := dayoff.NewHandler(svc)
		r.POST("/day-off-requests/:id/confirm", h.Confirm)

		req := httptest.NewRequest(http.MethodPost, "/day-off-requests/11/confirm", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeDayOffService{
			ConfirmFn: func(ctx context.Context, requestID string) (dayoff.RequestResponse, error) {
				assert.Equal(t, "11", requestID)
				return dayoff.RequestResponse{ID: 11, EmployeeID: 1, Date: "2025-02-01", Status: dayoff.StatusTaken}, nil
			},
		}

		r := setupRouter()
		h := dayoff.NewHandler(svc)
		r.POST("/day-off-requests/:id/confirm", h.Confirm)

		req := httptest.NewRequest(http.MethodPost, "/day-off-requests/11/confirm", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), dayoff.StatusTaken)
	})

	t.Run("not found returns 404", func(t *testing.T) {
		svc := &fakeDayOffService{
			ConfirmFn: func(ctx context.Context, requestID string) (dayoff.RequestResponse, error) {
				return dayoff.RequestResponse{}, dayofferrors.ErrRequestNotFound
			},
		}

		r := setupRouter()
		h := dayoff.NewHandler(svc)
		r.POST("/day-off-requests/:id/confirm", h.Confirm)

		req := httptest.NewRequest(http.MethodPost, "/day-off-requests/99/confirm", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
