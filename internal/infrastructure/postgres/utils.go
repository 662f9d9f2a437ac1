package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/wms-api/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return false
}

// isSerializationFailure fallos de concurrencia que se resuelven repitiendo la transacción.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
	}
	return false
}

// translate convierte errores crudos de PostgreSQL en errores de dominio reintentables.
// Los errores que ya son de dominio pasan sin cambios.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) || isUniqueViolation(err) {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}

// isForeignKeyViolation referencia a una fila inexistente (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isInvalidUUID un ID mal formado equivale a un registro inexistente (22P02).
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
