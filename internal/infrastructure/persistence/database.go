package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/credito/backend/internal/infrastructure/config"
	"github.com/credito/backend/internal/infrastructure/logger"
	"github.com/credito/backend/internal/infrastructure/schema"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database holds the database connection together with the schema registry
// it was opened against.
type Database struct {
	DB       *gorm.DB
	Registry *schema.Registry
	Dialect  schema.Dialect
	// Log is the logger repositories fall back to when a context carries none.
	Log *zap.Logger
}

// NewDatabase opens a connection for the configured driver, applies the pool
// settings and, when cfg.VerifySchema is set, checks the live schema against
// the registry.
func NewDatabase(cfg *config.DatabaseConfig, registry *schema.Registry, log *zap.Logger) (*Database, error) {
	dialect, err := schema.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case schema.SQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DSN()))
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.LogLevel),
		logger.WithSlowThreshold(cfg.SlowThreshold),
		logger.WithParameterizedQueries(!strings.EqualFold(cfg.LogLevel, "debug")),
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            dialect == schema.Postgres,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if dialect == schema.SQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := NewDatabaseFromGorm(db, registry, dialect, log)
	if cfg.VerifySchema {
		if err := d.VerifySchema(context.Background()); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	log.Info("Database connected",
		zap.String("driver", dialect.String()),
		zap.Int("tables", len(registry.TableNames())),
	)
	return d, nil
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// NewDatabaseFromGorm wraps an already opened connection. A nil log is
// replaced by a no-op logger.
func NewDatabaseFromGorm(db *gorm.DB, registry *schema.Registry, dialect schema.Dialect, log *zap.Logger) *Database {
	if log == nil {
		log = zap.NewNop()
	}
	return &Database{DB: db, Registry: registry, Dialect: dialect, Log: log}
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Stats returns database connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxIdleTimeClosed  int64
	MaxLifetimeClosed  int64
}

// Transaction executes fn within a database transaction bound to ctx
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}

// WithTeam returns a GORM DB scoped to rows of one team. It is meant for
// tables carrying a team_id column. Panics on a zero team id.
func (d *Database) WithTeam(teamID int64) *gorm.DB {
	if teamID == 0 {
		panic("WithTeam called with zero team ID - this is a programming error")
	}
	return d.DB.Where("team_id = ?", teamID)
}

// VerifySchema checks every registry table, column and index against the
// connected database.
func (d *Database) VerifySchema(ctx context.Context) error {
	return d.Registry.VerifyDatabase(ctx, d.DB)
}

// CreateSchema executes the registry DDL for the connection's dialect in one
// transaction.
func (d *Database) CreateSchema(ctx context.Context) error {
	return d.Transaction(ctx, func(tx *gorm.DB) error {
		for _, stmt := range d.Registry.DDL(d.Dialect) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
		}
		return nil
	})
}

// EnsureSchema creates the schema on an empty database and verifies it
// otherwise. A partially created schema is reported, never patched.
func (d *Database) EnsureSchema(ctx context.Context) error {
	m := d.DB.WithContext(ctx).Migrator()
	for _, name := range d.Registry.TableNames() {
		if m.HasTable(name) {
			return d.VerifySchema(ctx)
		}
	}
	return d.CreateSchema(ctx)
}
