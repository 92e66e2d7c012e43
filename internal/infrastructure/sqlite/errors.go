package sqlite

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// mapError traduce un error del driver a un error de dominio conservando la causa.
// SQLITE_CONSTRAINT (FK, CHECK, NOT NULL, UNIQUE, RAISE en triggers) -> ErrIntegrity; el resto -> ErrStorage.
// Los errores que ya son de dominio se devuelven sin cambios.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	cause := fmt.Errorf("%s: %w", op, err)
	if isConstraintViolation(err) {
		return domain.Wrap(domain.ErrIntegrity, cause)
	}
	return domain.Wrap(domain.ErrStorage, cause)
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrIntegrity) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrStorage)
}
