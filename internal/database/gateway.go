package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const defaultStatementTimeout = 5 * time.Second

// Gateway is the single handle every repository uses to reach Postgres.
// Each statement runs under a deadline so a caller waiting on an exhausted
// pool fails with an Unavailable error instead of hanging.
type Gateway struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGateway wraps db. A non-positive timeout uses the default of five seconds.
func NewGateway(db *gorm.DB, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultStatementTimeout
	}
	return &Gateway{db: db, timeout: timeout}
}

// Session returns a gorm handle bound to ctx plus the statement deadline.
// The returned cancel func must always be called.
func (g *Gateway) Session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	return g.db.WithContext(ctx), cancel
}

// Transaction runs fn inside a single database transaction. Any error returned
// by fn rolls the whole transaction back.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, cancel := g.Session(ctx)
	defer cancel()
	return TranslateError(db.Transaction(fn))
}

// Exec runs a parameterized statement and returns the number of affected rows.
// Arguments are always bound, never interpolated into sql.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	db, cancel := g.Session(ctx)
	defer cancel()
	result := db.Exec(sql, args...)
	if result.Error != nil {
		return 0, TranslateError(result.Error)
	}
	return result.RowsAffected, nil
}

// Query runs a parameterized select and scans the rows into dest.
func (g *Gateway) Query(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	db, cancel := g.Session(ctx)
	defer cancel()
	return TranslateError(db.Raw(sql, args...).Scan(dest).Error)
}

// Ping checks that a connection can be acquired and used
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return TranslateError(sqlDB.PingContext(ctx))
}

// Stats exposes the pool statistics for health reporting
func (g *Gateway) Stats() (sql.DBStats, error) {
	sqlDB, err := g.db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.Stats(), nil
}
