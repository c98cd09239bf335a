package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel         logger.LogLevel
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	ConnMaxIdleTime  time.Duration
	StatementTimeout time.Duration
	AutoMigrate      bool
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.LogLevel == 0 {
		out.LogLevel = logger.Error
	}
	if out.MaxOpenConns == 0 {
		out.MaxOpenConns = 10
	}
	if out.MaxIdleConns == 0 {
		out.MaxIdleConns = 5
	}
	if out.ConnMaxLifetime == 0 {
		out.ConnMaxLifetime = 30 * time.Minute
	}
	if out.ConnMaxIdleTime == 0 {
		out.ConnMaxIdleTime = 10 * time.Minute
	}
	return &out
}

// ParseLogLevel maps DB_LOG_LEVEL values onto GORM log levels, defaulting to error
func ParseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}

// Gateway owns the pooled store connection and is the single point through which
// parameterized statements are executed. Driver failures leave it as *apperrors.StoreError.
type Gateway struct {
	db               *gorm.DB
	statementTimeout time.Duration
}

// Open connects to Postgres, applies pool limits and, when requested, creates the
// categories/components schema if it is missing.
func Open(dsn string, opts *Options) (*Gateway, error) {
	opts = opts.withDefaults()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(opts.LogLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	gw := NewGateway(db, opts)
	if opts.AutoMigrate {
		if err := gw.Migrate(context.Background()); err != nil {
			_ = gw.Close()
			return nil, err
		}
	}
	return gw, nil
}

// NewGateway wraps an already opened GORM handle
func NewGateway(db *gorm.DB, opts *Options) *Gateway {
	opts = opts.withDefaults()
	return &Gateway{
		db:               db,
		statementTimeout: opts.StatementTimeout,
	}
}

// Migrate creates missing tables, indexes and constraints for the inventory schema
func (g *Gateway) Migrate(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Query runs a read statement and scans the row set into dest (a slice or struct pointer)
func (g *Gateway) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := g.statementContext(ctx)
	defer cancel()

	if err := g.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error; err != nil {
		return translateError(ctx, err)
	}
	return nil
}

// Exec runs a write statement and returns the number of affected rows
func (g *Gateway) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	ctx, cancel := g.statementContext(ctx)
	defer cancel()

	res := g.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, translateError(ctx, res.Error)
	}
	return res.RowsAffected, nil
}

// InsertReturningID runs an INSERT ... RETURNING id statement and returns the generated id
func (g *Gateway) InsertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	ctx, cancel := g.statementContext(ctx)
	defer cancel()

	var id int64
	res := g.db.WithContext(ctx).Raw(query, args...).Scan(&id)
	if res.Error != nil {
		return 0, translateError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: "insert returned no id"}
	}
	return id, nil
}

// Ping performs a round-trip query and returns the store's current time
func (g *Gateway) Ping(ctx context.Context) (time.Time, error) {
	ctx, cancel := g.statementContext(ctx)
	defer cancel()

	var now time.Time
	if err := g.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, translateError(ctx, err)
	}
	return now, nil
}

// Close releases the connection pool
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

func (g *Gateway) statementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if g.statementTimeout > 0 {
		return context.WithTimeout(ctx, g.statementTimeout)
	}
	return context.WithCancel(ctx)
}

// translateError turns driver errors into the store error taxonomy
func translateError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &apperrors.StoreError{
			Kind:       KindForCode(pgErr.Code),
			Code:       pgErr.Code,
			Message:    pgErr.Message,
			Detail:     pgErr.Detail,
			Constraint: pgErr.ConstraintName,
			Table:      pgErr.TableName,
			Err:        err,
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: "statement timed out", Err: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: "statement cancelled", Err: err}
	}

	return &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: err.Error(), Err: err}
}

// KindForCode maps a Postgres SQLSTATE onto a store error kind
func KindForCode(code string) apperrors.StoreErrorKind {
	switch {
	case code == "23505":
		return apperrors.KindUniqueViolation
	case code == "23503":
		return apperrors.KindForeignKeyViolation
	case code == "42703", code == "42P01":
		return apperrors.KindSchemaMismatch
	case len(code) == 5 && code[:2] == "22":
		// class 22: data exception (invalid text representation, invalid json, ...)
		return apperrors.KindInvalidInputFormat
	default:
		return apperrors.KindUnknown
	}
}
