package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// casefoldFunc lowercases text with full Unicode rules. SQLite's built-in
// lower() and LIKE only fold ASCII.
const casefoldFunc = "casefold"

func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction(casefoldFunc, 1, casefold)
}

func casefold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// sqlExecutor is satisfied by both *sql.DB and *sql.Conn.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteEngine runs statements on an embedded SQLite file through the pure Go
// modernc.org/sqlite driver.
type sqliteEngine struct {
	db     *sql.DB
	exec   sqlExecutor
	conn   *sql.Conn
	logger zerolog.Logger
}

// openSQLite opens (or creates) the database file at path. The returned gorm
// handle shares the connection pool and is only used for schema migration.
func openSQLite(ctx context.Context, path string) (*sqliteEngine, *gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, errors.New("sqlite path is required")
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_time_format=sqlite"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite only supports one writer at a time
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to connect gorm to sqlite: %w", err)
	}

	engine := &sqliteEngine{
		db:     sqlDB,
		exec:   sqlDB,
		logger: log.With().Str("engine", "sqlite").Logger(),
	}
	return engine, gormDB, nil
}

func (e *sqliteEngine) Dialect() Dialect { return sqliteDialect{} }

func (e *sqliteEngine) Run(ctx context.Context, stmt string, args ...any) (int64, error) {
	start := time.Now()
	result, err := e.exec.ExecContext(ctx, stmt, args...)
	e.trace(stmt, len(args), start, err)
	if err != nil {
		return 0, translateSQLiteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (e *sqliteEngine) QueryOne(ctx context.Context, stmt string, args ...any) Row {
	start := time.Now()
	row := e.exec.QueryRowContext(ctx, stmt, args...)
	e.trace(stmt, len(args), start, row.Err())
	return sqliteRow{row}
}

func (e *sqliteEngine) QueryAll(ctx context.Context, stmt string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := e.exec.QueryContext(ctx, stmt, args...)
	e.trace(stmt, len(args), start, err)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return sqliteRows{rows}, nil
}

func (e *sqliteEngine) WithConnection(ctx context.Context, fn func(conn Engine) error) error {
	if e.conn != nil {
		return fn(e)
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire sqlite connection: %w", err)
	}
	defer conn.Close()

	return fn(&sqliteEngine{db: e.db, exec: conn, conn: conn, logger: e.logger})
}

func (e *sqliteEngine) Close() error {
	if e.conn != nil {
		return nil
	}
	return e.db.Close()
}

func (e *sqliteEngine) trace(stmt string, args int, start time.Time, err error) {
	e.logger.Debug().
		Str("stmt", stmt).
		Int("args", args).
		Dur("duration", time.Since(start)).
		AnErr("error", err).
		Msg("statement executed")
}

type sqliteRow struct {
	row *sql.Row
}

func (r sqliteRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return translateSQLiteError(err)
}

type sqliteRows struct {
	*sql.Rows
}

func (r sqliteRows) Close() {
	_ = r.Rows.Close()
}

// translateSQLiteError maps driver constraint failures onto errs sentinels.
func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		unique := code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
		// connections without extended result codes only report the primary code
		if !unique && code&0xff == sqlite3.SQLITE_CONSTRAINT {
			unique = strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
		}
		if unique {
			return fmt.Errorf("%w: %w", errs.ErrUniqueConstraintViolation, err)
		}
	}
	return err
}
