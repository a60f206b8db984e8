package vacation

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rec *VacationRecord) error
	FindByID(ctx context.Context, id uint) (*VacationRecord, error)
	FindAllByEmployee(ctx context.Context, employeeID uint) ([]VacationRecord, error)
	Update(ctx context.Context, rec *VacationRecord) error
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByEmployee(ctx context.Context, employeeID uint) error
	SumBalanceByEmployee(ctx context.Context, employeeID uint) (int, error)
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

func (r *repository) Create(ctx context.Context, rec *VacationRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*VacationRecord, error) {
	var rec VacationRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint) ([]VacationRecord, error) {
	var recs []VacationRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) Update(ctx context.Context, rec *VacationRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&VacationRecord{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	return r.db.WithContext(ctx).
		Delete(&VacationRecord{}, "employee_id = ?", employeeID).Error
}

func (r *repository) SumBalanceByEmployee(ctx context.Context, employeeID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&VacationRecord{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("employee_id = ?", employeeID).
		Scan(&total).Error
	return total, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
