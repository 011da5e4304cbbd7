package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "cricket-registration-backend/internal/errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("record not found passes through", func(t *testing.T) {
		err := TranslateError(gorm.ErrRecordNotFound)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("deadline exceeded is unavailable", func(t *testing.T) {
		err := TranslateError(fmt.Errorf("acquire conn: %w", context.DeadlineExceeded))
		assert.True(t, apperrors.IsUnavailable(err))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("unique violation keeps constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_email"}
		err := TranslateError(pgErr)
		assert.True(t, apperrors.IsAlreadyExists(err))
		assert.Equal(t, "idx_users_email", ConstraintName(err))

		var exists *apperrors.AlreadyExistsError
		assert.True(t, errors.As(err, &exists))
		assert.Equal(t, "users email", exists.Entity)
	})

	t.Run("foreign key violation is not found", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "fk_players_team"})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("check violation is validation", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_players_age"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("too many connections is unavailable", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: pgerrcode.TooManyConnections})
		assert.True(t, apperrors.IsUnavailable(err))
	})

	t.Run("unknown pg error passes through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrcode.SyntaxError}
		err := TranslateError(pgErr)
		assert.Same(t, pgErr, err)
	})

	t.Run("already translated is untouched", func(t *testing.T) {
		assert.Same(t, apperrors.ErrUnavailable, TranslateError(apperrors.ErrUnavailable))
	})
}

func TestEntityFromConstraint(t *testing.T) {
	assert.Equal(t, "profiles aadhar id", entityFromConstraint("idx_profiles_aadhar_id"))
	assert.Equal(t, "record", entityFromConstraint(""))
}
