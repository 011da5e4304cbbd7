package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	apperrors "cricket-registration-backend/internal/errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// TranslateError maps driver and pool failures onto the application error
// taxonomy. gorm.ErrRecordNotFound and unknown errors are returned unchanged so
// callers can still match them.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUnavailable(err) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewUnavailableError("database", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %w", apperrors.NewAlreadyExistsError(entityFromConstraint(pgErr.ConstraintName), ""), err)
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %w", apperrors.NewNotFoundError(entityFromConstraint(pgErr.ConstraintName)), err)
		case pgErr.Code == pgerrcode.CheckViolation,
			pgErr.Code == pgerrcode.NotNullViolation,
			pgerrcode.IsDataException(pgErr.Code):
			return fmt.Errorf("%w: %w", apperrors.NewValidationError(pgErr.ColumnName, "value rejected by the database"), err)
		case pgErr.Code == pgerrcode.TooManyConnections,
			pgErr.Code == pgerrcode.CannotConnectNow,
			pgErr.Code == pgerrcode.QueryCanceled,
			pgErr.Code == pgerrcode.LockNotAvailable,
			pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return apperrors.NewUnavailableError("database", err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperrors.NewUnavailableError("database", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.NewUnavailableError("database", err)
	}

	return err
}

// ConstraintName returns the constraint named by a Postgres error, or "" when
// err does not carry one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// entityFromConstraint turns "idx_users_email" or "fk_teams_captain" into a readable entity name
func entityFromConstraint(name string) string {
	for _, prefix := range []string{"idx_", "uni_", "fk_", "chk_"} {
		name = strings.TrimPrefix(name, prefix)
	}
	if name == "" {
		return "record"
	}
	return strings.ReplaceAll(name, "_", " ")
}
