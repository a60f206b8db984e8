package employee

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/killerdias/controle-ferias/internal/dayoff"
	employeeerrors "github.com/killerdias/controle-ferias/internal/employee/errors"
	"github.com/killerdias/controle-ferias/internal/shared/contextutil"
	"github.com/killerdias/controle-ferias/internal/vacation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	vacations vacation.Repository
	dayoffs   dayoff.Repository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	vacations vacation.Repository,
	dayoffs dayoff.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		vacations: vacations,
		dayoffs:   dayoffs,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmptyName
	}
	admissionDate, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		s.logger.Warn("create employee invalid admission_date",
			zap.String("admission_date", req.AdmissionDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidAdmissionDate
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		Name:          name,
		AdmissionDate: admissionDate,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", e.ID),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	empID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*e), nil
}

// GetDetail assembles the full picture of one employee: vacation records
// (year descending), day-off grants (grant date descending), day-off
// requests (date descending) and both derived balances, in one response.
func (s *service) GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("get employee detail requested", zap.String("employee_id", id))

	empID, err := parseID(id)
	if err != nil {
		return EmployeeDetailResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		log.Error("get employee detail load failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	records, err := s.vacations.FindAllByEmployee(ctx, empID)
	if err != nil {
		log.Error("get employee detail vacations failed", zap.Error(err))
		return EmployeeDetailResponse{}, err
	}
	grants, err := s.dayoffs.FindGrantsByEmployee(ctx, empID)
	if err != nil {
		log.Error("get employee detail grants failed", zap.Error(err))
		return EmployeeDetailResponse{}, err
	}
	requests, err := s.dayoffs.FindRequestsByEmployee(ctx, empID)
	if err != nil {
		log.Error("get employee detail requests failed", zap.Error(err))
		return EmployeeDetailResponse{}, err
	}

	granted, err := s.dayoffs.SumGrantedByEmployee(ctx, empID)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}
	taken, err := s.dayoffs.CountTakenByEmployee(ctx, empID)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}
	vacationBalance, err := s.vacations.SumBalanceByEmployee(ctx, empID)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}

	return EmployeeDetailResponse{
		Employee:        mapToResponse(*e),
		Vacations:       mapVacationEntries(records),
		Grants:          mapGrantEntries(grants),
		Requests:        mapRequestEntries(requests),
		DayOffBalance:   granted - taken,
		VacationBalance: vacationBalance,
	}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	empID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmptyName
	}
	admissionDate, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidAdmissionDate
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, empID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	e.Name = name
	e.AdmissionDate = admissionDate

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.Uint("employee_id", e.ID))

	return mapToResponse(*e), nil
}

// Delete removes the employee and every ledger row that references them.
// The whole cascade runs in one transaction; any failure rolls back all of it.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	empID, err := parseID(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, empID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := s.dayoffs.WithTx(tx).DeleteByEmployee(ctx, empID); err != nil {
		s.logger.Error("delete employee day-off cascade failed", zap.Error(err))
		return err
	}
	if err := s.vacations.WithTx(tx).DeleteByEmployee(ctx, empID); err != nil {
		s.logger.Error("delete employee vacation cascade failed", zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, empID); err != nil {
		s.logger.Error("delete employee persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("delete employee success", zap.Uint("employee_id", empID))

	return nil
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		AdmissionDate: e.AdmissionDate.Format("2006-01-02"),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}

func mapVacationEntries(records []vacation.VacationRecord) []vacation.VacationResponse {
	resp := make([]vacation.VacationResponse, len(records))
	for i, rec := range records {
		entry := vacation.VacationResponse{
			ID:          rec.ID,
			EmployeeID:  rec.EmployeeID,
			Year:        rec.Year,
			DaysPending: rec.DaysPending,
			DaysTaken:   rec.DaysTaken,
			Balance:     rec.Balance,
			Forecast:    rec.Forecast,
			SaleNote:    rec.SaleNote,
		}
		if rec.DateTaken != nil {
			v := rec.DateTaken.Format("2006-01-02")
			entry.DateTaken = &v
		}
		resp[i] = entry
	}
	return resp
}

func mapGrantEntries(grants []dayoff.Grant) []dayoff.GrantResponse {
	resp := make([]dayoff.GrantResponse, len(grants))
	for i, g := range grants {
		resp[i] = dayoff.GrantResponse{
			ID:         g.ID,
			EmployeeID: g.EmployeeID,
			Quantity:   g.Quantity,
			GrantDate:  g.GrantDate.Format("2006-01-02"),
			Reason:     g.Reason,
		}
	}
	return resp
}

func mapRequestEntries(requests []dayoff.Request) []dayoff.RequestResponse {
	resp := make([]dayoff.RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = dayoff.RequestResponse{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Date:       r.Date.Format("2006-01-02"),
			Status:     r.Status,
		}
	}
	return resp
}
