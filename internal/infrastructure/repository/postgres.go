package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// PostgresStore owns the gorm handle used by the relational repositories
type PostgresStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// OpenPostgres opens a pooled connection and verifies it
func OpenPostgres(ctx context.Context, dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger, 200*time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("Connected to PostgreSQL")
	return &PostgresStore{db: db, logger: logger}, nil
}

// DB returns the gorm handle
func (s *PostgresStore) DB() *gorm.DB {
	return s.db
}

// Ping reports whether the database is reachable
func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MigrateUp applies every pending embedded migration
func (s *PostgresStore) MigrateUp(ctx context.Context) error {
	return s.withGoose(func() error {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return goose.UpContext(ctx, sqlDB, migrationsDir)
	})
}

// MigrateDown rolls back the most recent migration
func (s *PostgresStore) MigrateDown(ctx context.Context) error {
	return s.withGoose(func() error {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return goose.DownContext(ctx, sqlDB, migrationsDir)
	})
}

// MigrationVersion returns the current schema version
func (s *PostgresStore) MigrationVersion(ctx context.Context) (int64, error) {
	var version int64
	err := s.withGoose(func() error {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		version, err = goose.GetDBVersionContext(ctx, sqlDB)
		return err
	})
	return version, err
}

func (s *PostgresStore) withGoose(run func() error) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger: s.logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := run(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// gooseLogger routes migration progress into zerolog
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

// GormLogger adapts zerolog to gorm's logger interface
type GormLogger struct {
	logger        zerolog.Logger
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger; queries slower than slowThreshold log at warn
func NewGormLogger(logger zerolog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:        logger.With().Str("component", "gorm").Logger(),
		slowThreshold: slowThreshold,
	}
}

// LogMode is a no-op; the zerolog level decides what is written
func (l *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	l.logger.Info().Msgf(msg, data...)
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	l.logger.Warn().Msgf(msg, data...)
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	l.logger.Error().Msgf(msg, data...)
}

// Trace logs failed and slow statements, and every statement at trace level
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("Query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		sql, rows := fc()
		l.logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("Slow query")
	default:
		if e := l.logger.Trace(); e.Enabled() {
			sql, rows := fc()
			e.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("Query")
		}
	}
}
