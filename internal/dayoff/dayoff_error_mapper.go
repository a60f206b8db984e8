package dayoff

import (
	"errors"

	dayofferrors "github.com/killerdias/controle-ferias/internal/dayoff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dayofferrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		if pgErr.Code == "23503" {
			return dayofferrors.ErrEmployeeReference
		}
	}

	return err
}
