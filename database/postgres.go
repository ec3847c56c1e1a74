package database

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// pgxQuerier is satisfied by both *pgxpool.Pool and *pgxpool.Conn.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresEngine runs statements on PostgreSQL through a pgx connection pool.
type postgresEngine struct {
	pool   *pgxpool.Pool
	q      pgxQuerier
	conn   *pgxpool.Conn
	logger zerolog.Logger
}

// openPostgres connects a pool to dsn. The returned gorm handle has its own
// short-lived connection and is only used for schema migration; callers close
// it once migration is done.
func openPostgres(ctx context.Context, dsn string, maxConns int32) (*postgresEngine, *gorm.DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger: logger.New(
			stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect gorm to postgres: %w", err)
	}

	engine := &postgresEngine{
		pool:   pool,
		q:      pool,
		logger: log.With().Str("engine", "postgres").Logger(),
	}
	return engine, gormDB, nil
}

func (e *postgresEngine) Dialect() Dialect { return postgresDialect{} }

func (e *postgresEngine) Run(ctx context.Context, stmt string, args ...any) (int64, error) {
	start := time.Now()
	tag, err := e.q.Exec(ctx, stmt, args...)
	e.trace(stmt, len(args), start, err)
	if err != nil {
		return 0, translatePostgresError(err)
	}
	return tag.RowsAffected(), nil
}

func (e *postgresEngine) QueryOne(ctx context.Context, stmt string, args ...any) Row {
	start := time.Now()
	row := e.q.QueryRow(ctx, stmt, args...)
	e.trace(stmt, len(args), start, nil)
	return postgresRow{row}
}

func (e *postgresEngine) QueryAll(ctx context.Context, stmt string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := e.q.Query(ctx, stmt, args...)
	e.trace(stmt, len(args), start, err)
	if err != nil {
		return nil, translatePostgresError(err)
	}
	return postgresRows{rows}, nil
}

func (e *postgresEngine) WithConnection(ctx context.Context, fn func(conn Engine) error) error {
	if e.conn != nil {
		return fn(e)
	}

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire postgres connection: %w", err)
	}
	defer conn.Release()

	return fn(&postgresEngine{pool: e.pool, q: conn, conn: conn, logger: e.logger})
}

func (e *postgresEngine) Close() error {
	if e.conn == nil {
		e.pool.Close()
	}
	return nil
}

func (e *postgresEngine) trace(stmt string, args int, start time.Time, err error) {
	e.logger.Debug().
		Str("stmt", stmt).
		Int("args", args).
		Dur("duration", time.Since(start)).
		AnErr("error", err).
		Msg("statement executed")
}

type postgresRow struct {
	row pgx.Row
}

func (r postgresRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return translatePostgresError(err)
}

type postgresRows struct {
	pgx.Rows
}

func (r postgresRows) Scan(dest ...any) error {
	return translatePostgresError(r.Rows.Scan(dest...))
}

// translatePostgresError maps server constraint failures onto errs sentinels.
func translatePostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", errs.ErrUniqueConstraintViolation, err)
	}
	return err
}
