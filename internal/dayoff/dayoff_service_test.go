package dayoff

import (
	"context"
	"errors"
	"testing"
	"time"

	dayofferrors "github.com/killerdias/controle-ferias/internal/dayoff/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                 func(tx *gorm.DB) Repository
	createGrantFn            func(ctx context.Context, g *Grant) error
	findGrantsByEmployeeFn   func(ctx context.Context, employeeID uint) ([]Grant, error)
	sumGrantedByEmployeeFn   func(ctx context.Context, employeeID uint) (int, error)
	createRequestFn          func(ctx context.Context, req *Request) error
	findRequestByIDFn        func(ctx context.Context, id uint) (*Request, error)
	findRequestsByEmployeeFn func(ctx context.Context, employeeID uint) ([]Request, error)
	findRequestDatesFn       func(ctx context.Context, employeeID uint, status string) ([]time.Time, error)
	countTakenByEmployeeFn   func(ctx context.Context, employeeID uint) (int, error)
	markRequestTakenFn       func(ctx context.Context, id uint) (int64, error)
	deleteByEmployeeFn       func(ctx context.Context, employeeID uint) error
	employeeExistsFn         func(ctx context.Context, employeeID uint) (bool, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) CreateGrant(ctx context.Context, g *Grant) error {
	return f.createGrantFn(ctx, g)
}
func (f *fakeRepo) FindGrantsByEmployee(ctx context.Context, employeeID uint) ([]Grant, error) {
	return f.findGrantsByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) SumGrantedByEmployee(ctx context.Context, employeeID uint) (int, error) {
	return f.sumGrantedByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) CreateRequest(ctx context.Context, req *Request) error {
	return f.createRequestFn(ctx, req)
}
func (f *fakeRepo) FindRequestByID(ctx context.Context, id uint) (*Request, error) {
	return f.findRequestByIDFn(ctx, id)
}
func (f *fakeRepo) FindRequestsByEmployee(ctx context.Context, employeeID uint) ([]Request, error) {
	return f.findRequestsByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindRequestDates(ctx context.Context, employeeID uint, status string) ([]time.Time, error) {
	return f.findRequestDatesFn(ctx, employeeID, status)
}
func (f *fakeRepo) CountTakenByEmployee(ctx context.Context, employeeID uint) (int, error) {
	return f.countTakenByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) MarkRequestTaken(ctx context.Context, id uint) (int64, error) {
	return f.markRequestTakenFn(ctx, id)
}
func (f *fakeRepo) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	return f.deleteByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

func TestService_Grant_InvalidQuantity(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeRepo{})

	_, err := svc.Grant(context.Background(), "1", CreateGrantRequest{Quantity: 0})
	assert.ErrorIs(t, err, dayofferrors.ErrInvalidQuantity)
}

func TestService_Grant_UnknownEmployee(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.employeeExistsFn = func(ctx context.Context, employeeID uint) (bool, error) { return false, nil }

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Grant(context.Background(), "42", CreateGrantRequest{Quantity: 3})
	assert.ErrorIs(t, err, dayofferrors.ErrEmployeeReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Grant_Success(t *testing.T) {
	gdb, mock := newTestDB(t)

	var saved Grant
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.employeeExistsFn = func(ctx context.Context, employeeID uint) (bool, error) { return true, nil }
	repo.createGrantFn = func(ctx context.Context, g *Grant) error {
		g.ID = 7
		saved = *g
		return nil
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Grant(context.Background(), "1", CreateGrantRequest{
		Quantity:  3,
		Reason:    "feriado trabalhado",
		GrantDate: "2025-01-10",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, "2025-01-10", resp.GrantDate)
	assert.Equal(t, uint(1), saved.EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_InsufficientBalance(t *testing.T) {
	gdb, mock := newTestDB(t)

	created := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.employeeExistsFn = func(ctx context.Context, employeeID uint) (bool, error) { return true, nil }
	repo.sumGrantedByEmployeeFn = func(ctx context.Context, employeeID uint) (int, error) { return 2, nil }
	repo.countTakenByEmployeeFn = func(ctx context.Context, employeeID uint) (int, error) { return 2, nil }
	repo.createRequestFn = func(ctx context.Context, req *Request) error {
		created = true
		return nil
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Request(context.Background(), "1", CreateRequestRequest{Date: "2025-02-01"})
	assert.ErrorIs(t, err, dayofferrors.ErrInsufficientBalance)
	assert.False(t, created, "no request row may be written when the balance gate fails")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_Success(t *testing.T) {
	gdb, mock := newTestDB(t)

	var saved Request
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.employeeExistsFn = func(ctx context.Context, employeeID uint) (bool, error) { return true, nil }
	repo.sumGrantedByEmployeeFn = func(ctx context.Context, employeeID uint) (int, error) { return 3, nil }
	repo.countTakenByEmployeeFn = func(ctx context.Context, employeeID uint) (int, error) { return 1, nil }
	repo.createRequestFn = func(ctx context.Context, req *Request) error {
		req.ID = 11
		saved = *req
		return nil
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Request(context.Background(), "1", CreateRequestRequest{Date: "2025-02-01"})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "2025-02-01", resp.Date)
	assert.Equal(t, StatusPending, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_InvalidDate(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeRepo{})

	_, err := svc.Request(context.Background(), "1", CreateRequestRequest{Date: "01/02/2025"})
	assert.ErrorIs(t, err, dayofferrors.ErrInvalidDateFormat)
}

func TestService_Confirm_Success(t *testing.T) {
	gdb, mock := newTestDB(t)

	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.markRequestTakenFn = func(ctx context.Context, id uint) (int64, error) { return 1, nil }
	repo.findRequestByIDFn = func(ctx context.Context, id uint) (*Request, error) {
		return &Request{ID: id, EmployeeID: 1, Date: date, Status: StatusTaken}, nil
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Confirm(context.Background(), "11")
	assert.NoError(t, err)
	assert.Equal(t, StatusTaken, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Confirm_AlreadyTaken(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.markRequestTakenFn = func(ctx context.Context, id uint) (int64, error) { return 0, nil }
	repo.findRequestByIDFn = func(ctx context.Context, id uint) (*Request, error) {
		return &Request{ID: id, Status: StatusTaken}, nil
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Confirm(context.Background(), "11")
	assert.ErrorIs(t, err, dayofferrors.ErrAlreadyTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Confirm_NotFound(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *gorm.DB) Repository { return repo }
	repo.markRequestTakenFn = func(ctx context.Context, id uint) (int64, error) { return 0, nil }
	repo.findRequestByIDFn = func(ctx context.Context, id uint) (*Request, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Confirm(context.Background(), "99")
	assert.ErrorIs(t, err, dayofferrors.ErrRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Grant_InvalidEmployeeID(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeRepo{})

	_, err := svc.Grant(context.Background(), "abc", CreateGrantRequest{Quantity: 1})
	assert.ErrorIs(t, err, dayofferrors.ErrInvalidEmployeeID)
}

func TestService_ListRequests(t *testing.T) {
	gdb, _ := newTestDB(t)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	repo.findRequestsByEmployeeFn = func(ctx context.Context, employeeID uint) ([]Request, error) {
		assert.Equal(t, uint(5), employeeID)
		return []Request{{ID: 1, EmployeeID: 5, Date: date, Status: StatusPending}}, nil
	}

	svc := NewService(gdb, repo)

	resp, err := svc.ListRequests(context.Background(), "5")
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "2025-03-10", resp[0].Date)

	var repoErr = errors.New("boom")
	repo.findRequestsByEmployeeFn = func(ctx context.Context, employeeID uint) ([]Request, error) {
		return nil, repoErr
	}
	_, err = svc.ListRequests(context.Background(), "5")
	assert.Error(t, err)
}
