package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/config"
)

const (
	applicationName = "quadrago-discovery"
	connectAttempts = 5
	connectBackoff  = 500 * time.Millisecond
	pingTimeout     = 5 * time.Second
)

// DB - пул соединений каталога (pgx через database/sql, поверх sqlx)
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул и ждёт готовности базы: при старте в compose Postgres может подняться позже сервиса
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	connConfig.RuntimeParams["application_name"] = applicationName

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx")
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	backoff := connectBackoff
	for attempt := 1; ; attempt++ {
		err = ping(db)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}
		logger.Warn("PostgreSQL is not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		time.Sleep(backoff)
		backoff *= 2
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

func dsn(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

func ping(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// Health используется /api/v1/health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое соединение (интеграционные тесты)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
