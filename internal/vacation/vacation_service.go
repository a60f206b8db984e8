package vacation

import (
	"context"
	"errors"
	"strconv"
	"time"

	vacationerrors "github.com/killerdias/controle-ferias/internal/vacation/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateVacationRequest) (VacationResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationResponse, error)
	GetByID(ctx context.Context, id string) (VacationResponse, error)
	Update(ctx context.Context, id string, req UpdateVacationRequest) (VacationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateVacationRequest) (VacationResponse, error) {
	s.logger.Debug("create vacation record requested",
		zap.String("employee_id", employeeID),
		zap.Int("year", req.Year),
	)

	empID, err := parseID(employeeID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidEmployeeID
	}
	if req.Year <= 0 {
		return VacationResponse{}, vacationerrors.ErrInvalidYear
	}
	dateTaken, err := parseOptionalDate(req.DateTaken)
	if err != nil {
		return VacationResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create vacation begin tx failed", zap.Error(tx.Error))
		return VacationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, empID)
	if err != nil {
		s.logger.Error("create vacation employee check failed", zap.Error(err))
		return VacationResponse{}, err
	}
	if !exists {
		s.logger.Warn("create vacation for nonexistent employee",
			zap.String("employee_id", employeeID),
		)
		return VacationResponse{}, vacationerrors.ErrEmployeeReference
	}

	rec := &VacationRecord{
		EmployeeID:  empID,
		Year:        req.Year,
		DaysPending: req.DaysPending,
		DaysTaken:   req.DaysTaken,
		Balance:     req.Balance,
		Forecast:    req.Forecast,
		SaleNote:    req.SaleNote,
		DateTaken:   dateTaken,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("create vacation persist failed", zap.Error(err))
		return VacationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create vacation commit failed", zap.Error(err))
		return VacationResponse{}, err
	}
	s.logger.Info("create vacation success",
		zap.Uint("vacation_id", rec.ID),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*rec), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]VacationResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return nil, vacationerrors.ErrInvalidEmployeeID
	}

	recs, err := s.repo.FindAllByEmployee(ctx, empID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(recs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VacationResponse, error) {
	recID, err := parseID(id)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	rec, err := s.repo.FindByID(ctx, recID)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVacationRequest) (VacationResponse, error) {
	s.logger.Debug("update vacation record requested", zap.String("vacation_id", id))

	recID, err := parseID(id)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}
	if req.Year <= 0 {
		return VacationResponse{}, vacationerrors.ErrInvalidYear
	}
	dateTaken, err := parseOptionalDate(req.DateTaken)
	if err != nil {
		return VacationResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update vacation begin tx failed", zap.Error(tx.Error))
		return VacationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByID(ctx, recID)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}

	rec.Year = req.Year
	rec.DaysPending = req.DaysPending
	rec.DaysTaken = req.DaysTaken
	rec.Balance = req.Balance
	rec.Forecast = req.Forecast
	rec.SaleNote = req.SaleNote
	rec.DateTaken = dateTaken

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("update vacation persist failed",
			zap.String("vacation_id", id),
			zap.Error(err),
		)
		return VacationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update vacation commit failed", zap.Error(err))
		return VacationResponse{}, err
	}
	s.logger.Info("update vacation success", zap.Uint("vacation_id", rec.ID))

	return mapToResponse(*rec), nil
}

// Delete removes the record. A missing id is treated as a no-op: the original
// flow just returns to the caller with nothing deleted.
func (s *service) Delete(ctx context.Context, id string) error {
	recID, err := parseID(id)
	if err != nil {
		return vacationerrors.ErrInvalidVacationID
	}

	rows, err := s.repo.Delete(ctx, recID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rows == 0 {
		s.logger.Debug("delete vacation noop, record absent", zap.String("vacation_id", id))
	}
	return nil
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, vacationerrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func mapToResponse(rec VacationRecord) VacationResponse {
	resp := VacationResponse{
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
		resp.DateTaken = &v
	}
	return resp
}

func mapToListResponse(recs []VacationRecord) []VacationResponse {
	resp := make([]VacationResponse, len(recs))
	for i, rec := range recs {
		resp[i] = mapToResponse(rec)
	}
	return resp
}
