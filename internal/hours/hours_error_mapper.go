package hours

import (
	"errors"
	"strings"

	hourserrors "go-nomina/internal/hours/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hourserrors.ErrHourRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_hour_record_employee_fecha" {
			return hourserrors.ErrRecordAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_hour_record_employee_fecha") {
		return hourserrors.ErrRecordAlreadyExists
	}

	return err
}
