package dayoff

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dayoff_repo.go -destination=mock/dayoff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateGrant(ctx context.Context, g *Grant) error
	FindGrantsByEmployee(ctx context.Context, employeeID uint) ([]Grant, error)
	SumGrantedByEmployee(ctx context.Context, employeeID uint) (int, error)

	CreateRequest(ctx context.Context, req *Request) error
	FindRequestByID(ctx context.Context, id uint) (*Request, error)
	FindRequestsByEmployee(ctx context.Context, employeeID uint) ([]Request, error)
	FindRequestDates(ctx context.Context, employeeID uint, status string) ([]time.Time, error)
	CountTakenByEmployee(ctx context.Context, employeeID uint) (int, error)
	MarkRequestTaken(ctx context.Context, id uint) (int64, error)

	DeleteByEmployee(ctx context.Context, employeeID uint) error
	EmployeeExists(ctx context.Context, employeeID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateGrant(ctx context.Context, g *Grant) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindGrantsByEmployee(ctx context.Context, employeeID uint) ([]Grant, error) {
	var grants []Grant
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("grant_date DESC").
		Find(&grants).Error
	return grants, err
}

func (r *repository) SumGrantedByEmployee(ctx context.Context, employeeID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&Grant{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("employee_id = ?", employeeID).
		Scan(&total).Error
	return total, err
}

func (r *repository) CreateRequest(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id uint) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindRequestsByEmployee(ctx context.Context, employeeID uint) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindRequestDates(ctx context.Context, employeeID uint, status string) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Request{}).
		Select("date").
		Where("employee_id = ?", employeeID).
		Where("status = ?", status).
		Order("date ASC").
		Scan(&dates).Error
	return dates, err
}

func (r *repository) CountTakenByEmployee(ctx context.Context, employeeID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusTaken).
		Count(&count).Error
	return int(count), err
}

// MarkRequestTaken flips a pending request to taken with a single conditional
// update. Zero rows affected means the request is missing or not pending; two
// racing confirms can never both win.
func (r *repository) MarkRequestTaken(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Update("status", StatusTaken)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	if err := r.db.WithContext(ctx).
		Delete(&Grant{}, "employee_id = ?", employeeID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&Request{}, "employee_id = ?", employeeID).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
