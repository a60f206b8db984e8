package employee

import (
	"errors"

	employeeerrors "github.com/killerdias/controle-ferias/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23502 = not_null_violation, nome is the only nullable-checked column
		if pgErr.Code == "23502" {
			return employeeerrors.ErrEmptyName
		}
	}

	return err
}
