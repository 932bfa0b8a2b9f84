package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = apperrors.ErrNotFound
	// ErrDuplicate is returned when a natural identifier is already taken.
	ErrDuplicate = errors.New("duplicate identifier")
	// ErrQuotaExceeded is returned when a conditional quota update matched no row.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

const uniqueViolation = "23505"

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
