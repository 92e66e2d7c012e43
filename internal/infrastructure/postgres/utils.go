package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isConstraintViolation verifica si un error pertenece a la clase 23 (integrity_constraint_violation):
// FK (23503), CHECK (23514), NOT NULL (23502), UNIQUE (23505).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}
	return false
}

// mapError traduce un error del driver a un error de dominio conservando la causa.
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

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrIntegrity) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrStorage)
}
