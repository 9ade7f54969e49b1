package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"userapi/database/migrations"
	"userapi/internal/config"
)

// Connect opens the PostgreSQL pool through the pgx stdlib driver and verifies it.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Verify the connection
	if err := db.PingContext(pingCtx); err != nil {
		// close the db handle if ping fails to avoid resource leak
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("Database migrations applied successfully", "version", version)
	return nil
}

// newGormLogger routes GORM output through the process logger. Statements
// are traced in debug mode only; a missed lookup is not an error.
func newGormLogger(logger *slog.Logger, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.NewSlogLogger(logger.With("component", "gorm"), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
		LogLevel:                  level,
	})
}

// OpenGorm wraps an existing pool so that GORM and goose share connections.
// TranslateError maps unique violations to gorm.ErrDuplicatedKey.
func OpenGorm(db *sql.DB, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger, debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm DB: %w", err)
	}
	return gdb, nil
}

// ConnectDB connects, migrates and returns both handles.
func ConnectDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, *gorm.DB, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// Run migrations
	if err := RunMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	gdb, err := OpenGorm(db, logger, cfg.LogLevel == "debug")
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("Connected to the database successfully")
	return db, gdb, nil
}
