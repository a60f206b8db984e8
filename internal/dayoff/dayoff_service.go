package dayoff

import (
	"context"
	"errors"
	"strconv"
	"time"

	dayofferrors "github.com/killerdias/controle-ferias/internal/dayoff/errors"
	"github.com/killerdias/controle-ferias/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending = "PENDING"
	StatusTaken   = "TAKEN"
)

//go:generate mockgen -source=dayoff_service.go -destination=mock/dayoff_service_mock.go -package=mock
type Service interface {
	Grant(ctx context.Context, employeeID string, req CreateGrantRequest) (GrantResponse, error)
	ListGrants(ctx context.Context, employeeID string) ([]GrantResponse, error)
	Request(ctx context.Context, employeeID string, req CreateRequestRequest) (RequestResponse, error)
	ListRequests(ctx context.Context, employeeID string) ([]RequestResponse, error)
	Confirm(ctx context.Context, requestID string) (RequestResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dayoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dayoff.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Grant(ctx context.Context, employeeID string, req CreateGrantRequest) (GrantResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("grant days off requested",
		zap.String("employee_id", employeeID),
		zap.Int("quantity", req.Quantity),
	)

	empID, err := parseID(employeeID)
	if err != nil {
		return GrantResponse{}, dayofferrors.ErrInvalidEmployeeID
	}
	if req.Quantity < 1 {
		return GrantResponse{}, dayofferrors.ErrInvalidQuantity
	}

	grantDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.GrantDate != "" {
		grantDate, err = parseDate(req.GrantDate)
		if err != nil {
			return GrantResponse{}, err
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("grant days off begin tx failed", zap.Error(tx.Error))
		return GrantResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, empID)
	if err != nil {
		log.Error("grant days off employee check failed", zap.Error(err))
		return GrantResponse{}, err
	}
	if !exists {
		return GrantResponse{}, dayofferrors.ErrEmployeeReference
	}

	g := &Grant{
		EmployeeID: empID,
		Quantity:   req.Quantity,
		GrantDate:  grantDate,
		Reason:     req.Reason,
	}

	if err := qtx.CreateGrant(ctx, g); err != nil {
		log.Error("grant days off persist failed", zap.Error(err))
		return GrantResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("grant days off commit failed", zap.Error(err))
		return GrantResponse{}, err
	}
	log.Info("grant days off success",
		zap.Uint("grant_id", g.ID),
		zap.String("employee_id", employeeID),
		zap.Int("quantity", req.Quantity),
		zap.String("actor_id", contextutil.GetUserID(ctx)),
	)

	return mapGrantToResponse(*g), nil
}

func (s *service) ListGrants(ctx context.Context, employeeID string) ([]GrantResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return nil, dayofferrors.ErrInvalidEmployeeID
	}

	grants, err := s.repo.FindGrantsByEmployee(ctx, empID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapGrantsToResponse(grants), nil
}

// Request schedules a day off. The balance gate and the insert run inside one
// transaction so a failed gate never leaves a row behind.
func (s *service) Request(ctx context.Context, employeeID string, req CreateRequestRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("request day off",
		zap.String("employee_id", employeeID),
		zap.String("date", req.Date),
	)

	empID, err := parseID(employeeID)
	if err != nil {
		return RequestResponse{}, dayofferrors.ErrInvalidEmployeeID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return RequestResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("request day off begin tx failed", zap.Error(tx.Error))
		return RequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, empID)
	if err != nil {
		log.Error("request day off employee check failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if !exists {
		return RequestResponse{}, dayofferrors.ErrEmployeeReference
	}

	granted, err := qtx.SumGrantedByEmployee(ctx, empID)
	if err != nil {
		log.Error("request day off sum granted failed", zap.Error(err))
		return RequestResponse{}, err
	}
	taken, err := qtx.CountTakenByEmployee(ctx, empID)
	if err != nil {
		log.Error("request day off count taken failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if granted-taken <= 0 {
		log.Warn("request day off insufficient balance",
			zap.String("employee_id", employeeID),
			zap.Int("granted", granted),
			zap.Int("taken", taken),
		)
		return RequestResponse{}, dayofferrors.ErrInsufficientBalance
	}

	r := &Request{
		EmployeeID: empID,
		Date:       date,
		Status:     StatusPending,
	}

	if err := qtx.CreateRequest(ctx, r); err != nil {
		log.Error("request day off persist failed", zap.Error(err))
		return RequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("request day off commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	log.Info("request day off success",
		zap.Uint("request_id", r.ID),
		zap.String("employee_id", employeeID),
		zap.String("actor_id", contextutil.GetUserID(ctx)),
	)

	return mapRequestToResponse(*r), nil
}

func (s *service) ListRequests(ctx context.Context, employeeID string) ([]RequestResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return nil, dayofferrors.ErrInvalidEmployeeID
	}

	reqs, err := s.repo.FindRequestsByEmployee(ctx, empID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapRequestsToResponse(reqs), nil
}

// Confirm flips a pending request to taken. The conditional update is the only
// write; when it touches zero rows the request is re-read once to tell a
// missing id apart from an already confirmed one. Neither case mutates state.
func (s *service) Confirm(ctx context.Context, requestID string) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("confirm day off requested", zap.String("request_id", requestID))

	reqID, err := parseID(requestID)
	if err != nil {
		return RequestResponse{}, dayofferrors.ErrInvalidRequestID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("confirm day off begin tx failed", zap.Error(tx.Error))
		return RequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.MarkRequestTaken(ctx, reqID)
	if err != nil {
		log.Error("confirm day off update failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if rows == 0 {
		if _, err := qtx.FindRequestByID(ctx, reqID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RequestResponse{}, dayofferrors.ErrRequestNotFound
			}
			return RequestResponse{}, err
		}
		log.Warn("confirm day off on non-pending request", zap.String("request_id", requestID))
		return RequestResponse{}, dayofferrors.ErrAlreadyTaken
	}

	r, err := qtx.FindRequestByID(ctx, reqID)
	if err != nil {
		return RequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("confirm day off commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	log.Info("confirm day off success", zap.Uint("request_id", r.ID), zap.String("actor_id", contextutil.GetUserID(ctx)))

	return mapRequestToResponse(*r), nil
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, dayofferrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapGrantToResponse(g Grant) GrantResponse {
	return GrantResponse{
		ID:         g.ID,
		EmployeeID: g.EmployeeID,
		Quantity:   g.Quantity,
		GrantDate:  g.GrantDate.Format("2006-01-02"),
		Reason:     g.Reason,
	}
}

func mapGrantsToResponse(grants []Grant) []GrantResponse {
	resp := make([]GrantResponse, len(grants))
	for i, g := range grants {
		resp[i] = mapGrantToResponse(g)
	}
	return resp
}

func mapRequestToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format("2006-01-02"),
		Status:     r.Status,
	}
}

func mapRequestsToResponse(reqs []Request) []RequestResponse {
	resp := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapRequestToResponse(r)
	}
	return resp
}
