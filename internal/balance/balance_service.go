package balance

import (
	"context"
	"errors"
	"strconv"

	"github.com/killerdias/controle-ferias/internal/dayoff"
	"github.com/killerdias/controle-ferias/internal/employee"
	employeeerrors "github.com/killerdias/controle-ferias/internal/employee/errors"
	"github.com/killerdias/controle-ferias/internal/vacation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Service derives balances and digests straight from the ledgers. Nothing is
// cached: every call recomputes from the store.
//
//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	DayOffBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
	VacationBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
	DayOffSummary(ctx context.Context, employeeID string) (DayOffSummaryResponse, error)
	VacationSummary(ctx context.Context, employeeID string) (VacationSummaryResponse, error)
}

type service struct {
	employees employee.Repository
	vacations vacation.Repository
	dayoffs   dayoff.Repository
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	employees employee.Repository,
	vacations vacation.Repository,
	dayoffs dayoff.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		employees: employees,
		vacations: vacations,
		dayoffs:   dayoffs,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// DayOffBalance = sum of granted quantities minus count of taken requests.
// An employee with no ledger rows sits at zero; the value goes negative when
// grants vanished after requests were confirmed.
func (s *service) DayOffBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return BalanceResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	granted, err := s.dayoffs.SumGrantedByEmployee(ctx, empID)
	if err != nil {
		s.logger.Error("day-off balance sum granted failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	taken, err := s.dayoffs.CountTakenByEmployee(ctx, empID)
	if err != nil {
		s.logger.Error("day-off balance count taken failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	return BalanceResponse{EmployeeID: empID, Balance: granted - taken}, nil
}

// VacationBalance sums the balance column across the employee's records,
// with nulls counting as zero.
func (s *service) VacationBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return BalanceResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	total, err := s.vacations.SumBalanceByEmployee(ctx, empID)
	if err != nil {
		s.logger.Error("vacation balance sum failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	return BalanceResponse{EmployeeID: empID, Balance: total}, nil
}

func (s *service) DayOffSummary(ctx context.Context, employeeID string) (DayOffSummaryResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return DayOffSummaryResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	// Singleflight only merges concurrent identical builds; results are never
	// kept around, so every caller still sees freshly computed data.
	v, err, _ := s.sf.Do("summary:dayoff:"+employeeID, func() (interface{}, error) {
		return s.buildDayOffSummary(ctx, empID)
	})
	if err != nil {
		return DayOffSummaryResponse{}, err
	}
	return v.(DayOffSummaryResponse), nil
}

func (s *service) buildDayOffSummary(ctx context.Context, empID uint) (DayOffSummaryResponse, error) {
	emp, err := s.employees.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayOffSummaryResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("day-off summary load employee failed", zap.Error(err))
		return DayOffSummaryResponse{}, err
	}

	totalGranted, err := s.dayoffs.SumGrantedByEmployee(ctx, empID)
	if err != nil {
		return DayOffSummaryResponse{}, err
	}
	taken, err := s.dayoffs.FindRequestDates(ctx, empID, dayoff.StatusTaken)
	if err != nil {
		return DayOffSummaryResponse{}, err
	}
	pending, err := s.dayoffs.FindRequestDates(ctx, empID, dayoff.StatusPending)
	if err != nil {
		return DayOffSummaryResponse{}, err
	}

	bal := totalGranted - len(taken)

	resp := DayOffSummaryResponse{
		EmployeeName: emp.Name,
		TotalGranted: totalGranted,
		TakenDates:   make([]string, len(taken)),
		PendingDates: make([]string, len(pending)),
		Balance:      bal,
		Text:         formatDayOffText(emp.Name, totalGranted, taken, pending, bal),
	}
	for i, d := range taken {
		resp.TakenDates[i] = formatDisplayDate(d)
	}
	for i, d := range pending {
		resp.PendingDates[i] = formatDisplayDate(d)
	}

	return resp, nil
}

func (s *service) VacationSummary(ctx context.Context, employeeID string) (VacationSummaryResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return VacationSummaryResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	v, err, _ := s.sf.Do("summary:vacation:"+employeeID, func() (interface{}, error) {
		return s.buildVacationSummary(ctx, empID)
	})
	if err != nil {
		return VacationSummaryResponse{}, err
	}
	return v.(VacationSummaryResponse), nil
}

func (s *service) buildVacationSummary(ctx context.Context, empID uint) (VacationSummaryResponse, error) {
	emp, err := s.employees.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VacationSummaryResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("vacation summary load employee failed", zap.Error(err))
		return VacationSummaryResponse{}, err
	}

	records, err := s.vacations.FindAllByEmployee(ctx, empID)
	if err != nil {
		return VacationSummaryResponse{}, err
	}
	total, err := s.vacations.SumBalanceByEmployee(ctx, empID)
	if err != nil {
		return VacationSummaryResponse{}, err
	}

	resp := VacationSummaryResponse{
		EmployeeName: emp.Name,
		Records:      make([]VacationSummaryEntry, len(records)),
		Balance:      total,
		Text:         formatVacationText(emp.Name, records),
	}
	for i, rec := range records {
		entry := VacationSummaryEntry{
			Year:        rec.Year,
			DaysPending: rec.DaysPending,
			DaysTaken:   rec.DaysTaken,
			Balance:     rec.Balance,
			Forecast:    rec.Forecast,
			SaleNote:    rec.SaleNote,
		}
		if rec.DateTaken != nil {
			v := formatDisplayDate(*rec.DateTaken)
			entry.DateTaken = &v
		}
		resp.Records[i] = entry
	}

	return resp, nil
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
