package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/infrastructure/config"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"github.com/credito/backend/internal/infrastructure/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewDatabaseFromGorm(gormDB, schema.Default(), schema.Postgres, nil), mock, mockDB
}

func TestDatabase_WithTeam(t *testing.T) {
	t.Run("scopes queries to the team", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "activity_logs" WHERE team_id = \$1 AND action = \$2`).
			WithArgs(int64(7), identity.ActivitySignIn).
			WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "action"}).
				AddRow(1, 7, "SIGN_IN"))

		var rows []models.ActivityLogModel
		err := db.WithTeam(7).Where("action = ?", identity.ActivitySignIn).Find(&rows).Error
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(7), rows[0].TeamID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not modify original DB", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		originalDB := db.DB
		scoped := db.WithTeam(3)

		assert.NotEqual(t, originalDB, scoped)
		assert.Equal(t, originalDB, db.DB)
	})

	t.Run("zero team panics", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		assert.Panics(t, func() {
			db.WithTeam(0)
		})
	})
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.GreaterOrEqual(t, stats.WaitDuration, time.Duration(0))
}

func TestDatabase_Ping(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	// GORM may ping during Open, so expect it first
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	db := NewDatabaseFromGorm(gormDB, schema.Default(), schema.Postgres, nil)
	assert.NotNil(t, db.Log, "a nil logger is replaced by a no-op one")
	mock.ExpectPing()

	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Transaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "credits" SET "status"=\$1 WHERE id = \$2`).
			WithArgs("complete", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			return tx.Model(&models.CreditModel{}).Where("id = ?", int64(4)).Update("status", "complete").Error
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_EnsureSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the schema on an empty database", func(t *testing.T) {
		db := openEmptySQLite(t)
		require.NoError(t, db.EnsureSchema(ctx))
		assert.NoError(t, db.VerifySchema(ctx))

		for _, model := range models.All() {
			assert.True(t, db.DB.Migrator().HasTable(model))
		}
	})

	t.Run("verifies an existing schema", func(t *testing.T) {
		db := newTestDatabase(t)
		assert.NoError(t, db.EnsureSchema(ctx))
	})

	t.Run("reports a partial schema", func(t *testing.T) {
		db := newTestDatabase(t)
		require.NoError(t, db.DB.Exec(`DROP TABLE "invitations"`).Error)

		err := db.EnsureSchema(ctx)
		assert.ErrorIs(t, err, schema.ErrDatabaseMismatch)
	})
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "credito.db"),
		LogLevel:   "silent",
	}

	db, err := NewDatabase(cfg, schema.Default(), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, schema.SQLite, db.Dialect)
	require.NoError(t, db.CreateSchema(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	t.Run("foreign keys are enforced", func(t *testing.T) {
		err := db.DB.Exec(`INSERT INTO "credit_payments" ("credit_id", "nro", "payment_date", "base_amount", "interest_amount", "total_interest") VALUES (99, 1, CURRENT_TIMESTAMP, '1', '0', '0')`).Error
		assert.Error(t, err)
	})

	t.Run("reopening with verification", func(t *testing.T) {
		verifying := *cfg
		verifying.VerifySchema = true
		again, err := NewDatabase(&verifying, schema.Default(), zap.NewNop())
		require.NoError(t, err)
		assert.NoError(t, again.Close())
	})
}

func TestNewDatabase_VerifyFailsOnEmptyDatabase(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "empty.db"),
		VerifySchema: true,
	}

	_, err := NewDatabase(cfg, schema.Default(), zap.NewNop())
	assert.ErrorIs(t, err, schema.ErrDatabaseMismatch)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"}, schema.Default(), zap.NewNop())
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "credito.db?_foreign_keys=on", sqliteDSN("credito.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "x.db?_fk=1", sqliteDSN("x.db?_fk=1"))
}
