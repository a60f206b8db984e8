package vacation

import (
	"errors"

	vacationerrors "github.com/killerdias/controle-ferias/internal/vacation/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacationerrors.ErrVacationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		if pgErr.Code == "23503" {
			return vacationerrors.ErrEmployeeReference
		}
	}

	return err
}
