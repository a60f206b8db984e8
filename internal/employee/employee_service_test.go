package employee

import (
	"context"
	"testing"
	"time"

	"github.com/killerdias/controle-ferias/internal/dayoff"
	employeeerrors "github.com/killerdias/controle-ferias/internal/employee/errors"
	"github.com/killerdias/controle-ferias/internal/vacation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, e *Employee) error
	findAllFn  func(ctx context.Context) ([]Employee, error)
	findByIDFn func(ctx context.Context, id uint) (*Employee, error)
	updateFn   func(ctx context.Context, e *Employee) error
	deleteFn   func(ctx context.Context, id uint) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository                 { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id uint) error     { return f.deleteFn(ctx, id) }

type fakeVacationRepo struct {
	deleteByEmployeeFn     func(ctx context.Context, employeeID uint) error
	findAllByEmployeeFn    func(ctx context.Context, employeeID uint) ([]vacation.VacationRecord, error)
	sumBalanceByEmployeeFn func(ctx context.Context, employeeID uint) (int, error)
}

func (f *fakeVacationRepo) WithTx(tx *gorm.DB) vacation.Repository { return f }
func (f *fakeVacationRepo) Create(ctx context.Context, rec *vacation.VacationRecord) error {
	return nil
}
func (f *fakeVacationRepo) FindByID(ctx context.Context, id uint) (*vacation.VacationRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeVacationRepo) FindAllByEmployee(ctx context.Context, employeeID uint) ([]vacation.VacationRecord, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}
func (f *fakeVacationRepo) Update(ctx context.Context, rec *vacation.VacationRecord) error {
	return nil
}
func (f *fakeVacationRepo) Delete(ctx context.Context, id uint) (int64, error) { return 0, nil }
func (f *fakeVacationRepo) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	return f.deleteByEmployeeFn(ctx, employeeID)
}
func (f *fakeVacationRepo) SumBalanceByEmployee(ctx context.Context, employeeID uint) (int, error) {
	if f.sumBalanceByEmployeeFn != nil {
		return f.sumBalanceByEmployeeFn(ctx, employeeID)
	}
	return 0, nil
}
func (f *fakeVacationRepo) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	return true, nil
}

type fakeDayOffRepo struct {
	deleteByEmployeeFn       func(ctx context.Context, employeeID uint) error
	findGrantsByEmployeeFn   func(ctx context.Context, employeeID uint) ([]dayoff.Grant, error)
	findRequestsByEmployeeFn func(ctx context.Context, employeeID uint) ([]dayoff.Request, error)
	sumGrantedByEmployeeFn   func(ctx context.Context, employeeID uint) (int, error)
	countTakenByEmployeeFn   func(ctx context.Context, employeeID uint) (int, error)
}

func (f *fakeDayOffRepo) WithTx(tx *gorm.DB) dayoff.Repository                   { return f }
func (f *fakeDayOffRepo) CreateGrant(ctx context.Context, g *dayoff.Grant) error { return nil }
func (f *fakeDayOffRepo) FindGrantsByEmployee(ctx context.Context, employeeID uint) ([]dayoff.Grant, error) {
	if f.findGrantsByEmployeeFn != nil {
		return f.findGrantsByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}
func (f *fakeDayOffRepo) SumGrantedByEmployee(ctx context.Context, employeeID uint) (int, error) {
	if f.sumGrantedByEmployeeFn != nil {
		return f.sumGrantedByEmployeeFn(ctx, employeeID)
	}
	return 0, nil
}
func (f *fakeDayOffRepo) CreateRequest(ctx context.Context, req *dayoff.Request) error { return nil }
func (f *fakeDayOffRepo) FindRequestByID(ctx context.Context, id uint) (*dayoff.Request, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDayOffRepo) FindRequestsByEmployee(ctx context.Context, employeeID uint) ([]dayoff.Request, error) {
	if f.findRequestsByEmployeeFn != nil {
		return f.findRequestsByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}
func (f *fakeDayOffRepo) FindRequestDates(ctx context.Context, employeeID uint, status string) ([]time.Time, error) {
	return nil, nil
}
func (f *fakeDayOffRepo) CountTakenByEmployee(ctx context.Context, employeeID uint) (int, error) {
	if f.countTakenByEmployeeFn != nil {
		return f.countTakenByEmployeeFn(ctx, employeeID)
	}
	return 0, nil
}
func (f *fakeDayOffRepo) MarkRequestTaken(ctx context.Context, id uint) (int64, error) {
	return 0, nil
}
func (f *fakeDayOffRepo) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	return f.deleteByEmployeeFn(ctx, employeeID)
}
func (f *fakeDayOffRepo) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	return true, nil
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

func newTestService(gdb *gorm.DB, repo Repository) Service {
	return NewService(gdb, repo, &fakeVacationRepo{}, &fakeDayOffRepo{})
}

func TestService_Create(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, e *Employee) error {
		e.ID = 1
		return nil
	}

	svc := newTestService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:          "  João Silva  ",
		AdmissionDate: "2023-05-02",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "João Silva", resp.Name)
	assert.Equal(t, "2023-05-02", resp.AdmissionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_EmptyName(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := newTestService(gdb, &fakeRepo{})

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:          "   ",
		AdmissionDate: "2023-05-02",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmptyName)
}

func TestService_Create_InvalidAdmissionDate(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := newTestService(gdb, &fakeRepo{})

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:          "Ana",
		AdmissionDate: "02/05/2023",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidAdmissionDate)
}

func TestService_GetByID_NotFound(t *testing.T) {
	gdb, _ := newTestDB(t)

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := newTestService(gdb, repo)

	_, err := svc.GetByID(context.Background(), "99")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := newTestService(gdb, &fakeRepo{})

	_, err := svc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestService_GetDetail(t *testing.T) {
	gdb, _ := newTestDB(t)

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		return &Employee{ID: id, Name: "João Silva", AdmissionDate: time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)}, nil
	}

	dateTaken := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	vacations := &fakeVacationRepo{
		findAllByEmployeeFn: func(ctx context.Context, employeeID uint) ([]vacation.VacationRecord, error) {
			return []vacation.VacationRecord{
				{ID: 3, EmployeeID: employeeID, Year: 2024, DateTaken: &dateTaken},
			}, nil
		},
		sumBalanceByEmployeeFn: func(ctx context.Context, employeeID uint) (int, error) { return 12, nil },
	}
	dayoffs := &fakeDayOffRepo{
		findGrantsByEmployeeFn: func(ctx context.Context, employeeID uint) ([]dayoff.Grant, error) {
			return []dayoff.Grant{
				{ID: 4, EmployeeID: employeeID, Quantity: 5, GrantDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
		findRequestsByEmployeeFn: func(ctx context.Context, employeeID uint) ([]dayoff.Request, error) {
			return []dayoff.Request{
				{ID: 9, EmployeeID: employeeID, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Status: dayoff.StatusTaken},
				{ID: 8, EmployeeID: employeeID, Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Status: dayoff.StatusTaken},
			}, nil
		},
		sumGrantedByEmployeeFn: func(ctx context.Context, employeeID uint) (int, error) { return 5, nil },
		countTakenByEmployeeFn: func(ctx context.Context, employeeID uint) (int, error) { return 2, nil },
	}

	svc := NewService(gdb, repo, vacations, dayoffs)

	resp, err := svc.GetDetail(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, "João Silva", resp.Employee.Name)
	assert.Len(t, resp.Vacations, 1)
	assert.Equal(t, "2024-07-01", *resp.Vacations[0].DateTaken)
	assert.Len(t, resp.Grants, 1)
	assert.Equal(t, "2025-01-10", resp.Grants[0].GrantDate)
	assert.Len(t, resp.Requests, 2)
	assert.Equal(t, dayoff.StatusTaken, resp.Requests[0].Status)
	assert.Equal(t, 3, resp.DayOffBalance)
	assert.Equal(t, 12, resp.VacationBalance)
}

func TestService_GetDetail_NotFound(t *testing.T) {
	gdb, _ := newTestDB(t)

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := newTestService(gdb, repo)

	_, err := svc.GetDetail(context.Background(), "99")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_Update(t *testing.T) {
	gdb, mock := newTestDB(t)

	stored := Employee{ID: 1, Name: "Ana", AdmissionDate: time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		e := stored
		return &e, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error {
		stored = *e
		return nil
	}

	svc := newTestService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), "1", UpdateEmployeeRequest{
		Name:          "Ana Souza",
		AdmissionDate: "2023-06-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Ana Souza", resp.Name)
	assert.Equal(t, "Ana Souza", stored.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_CascadesLedgers(t *testing.T) {
	gdb, mock := newTestDB(t)

	var dayoffCascade, vacationCascade, deleted bool
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		return &Employee{ID: id, Name: "Ana"}, nil
	}
	repo.deleteFn = func(ctx context.Context, id uint) error {
		deleted = true
		return nil
	}

	vacations := &fakeVacationRepo{deleteByEmployeeFn: func(ctx context.Context, employeeID uint) error {
		vacationCascade = true
		return nil
	}}
	dayoffs := &fakeDayOffRepo{deleteByEmployeeFn: func(ctx context.Context, employeeID uint) error {
		dayoffCascade = true
		return nil
	}}

	svc := NewService(gdb, repo, vacations, dayoffs)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), "1")
	assert.NoError(t, err)
	assert.True(t, dayoffCascade)
	assert.True(t, vacationCascade)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_NotFound(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := newTestService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), "42")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
