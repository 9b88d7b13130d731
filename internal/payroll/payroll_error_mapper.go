package payroll

import (
	"errors"

	payrollerrors "go-nomina/internal/payroll/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrBatchNotFound
	}

	return err
}
