package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/infrastructure/schema"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDatabase opens a private in-memory SQLite database with the
// application schema created from the registry DDL.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	d := openEmptySQLite(t)
	require.NoError(t, d.CreateSchema(context.Background()))
	return d
}

// openEmptySQLite opens a private in-memory SQLite database with no tables.
func openEmptySQLite(t *testing.T) *Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewDatabaseFromGorm(db, schema.Default(), schema.SQLite, nil)
}

func ptr[T any](v T) *T { return &v }

func mustCreateClient(t *testing.T, db *gorm.DB, name string) *lending.Client {
	t.Helper()
	c, err := NewGormClientRepository(db).Create(context.Background(), lending.ClientInsert{
		Profile: lending.Profile{Name: name, DNIType: "DNI", DNI: uuid.NewString()[:8]},
	})
	require.NoError(t, err)
	return c
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()
	u, err := NewGormUserRepository(db).Create(context.Background(), identity.UserInsert{
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "$2a$12$placeholderhashplaceholderhashplaceholderhashpla",
	})
	require.NoError(t, err)
	return u
}

func mustCreateTeam(t *testing.T, db *gorm.DB, name string) *identity.Team {
	t.Helper()
	team, err := NewGormTeamRepository(db).Create(context.Background(), identity.TeamInsert{Name: name})
	require.NoError(t, err)
	return team
}

var scheduleStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// weeklyCredit returns a 4-quota credit of 1000 at 20% with its schedule.
func weeklyCredit(clientID int64) (lending.CreditInsert, []lending.CreditPaymentInsert) {
	in := lending.CreditInsert{
		ClientID:       clientID,
		StartDate:      scheduleStart,
		EndDate:        scheduleStart.AddDate(0, 0, 28),
		CreditAmount:   decimal.RequireFromString("1000.00"),
		Percentage:     decimal.RequireFromString("20"),
		Quotas:         4,
		BaseAmount:     decimal.RequireFromString("1000.00"),
		InterestAmount: decimal.RequireFromString("50.00"),
		FeeAmount:      decimal.RequireFromString("300.00"),
		TotalInterest:  decimal.RequireFromString("200.00"),
		Total:          decimal.RequireFromString("1200.00"),
	}
	schedule := make([]lending.CreditPaymentInsert, in.Quotas)
	for i := range schedule {
		schedule[i] = lending.CreditPaymentInsert{
			Nro:            i + 1,
			PaymentDate:    scheduleStart.AddDate(0, 0, 7*(i+1)),
			BaseAmount:     decimal.RequireFromString("250.00"),
			InterestAmount: decimal.RequireFromString("50.00"),
			TotalInterest:  decimal.RequireFromString("200.00"),
		}
	}
	return in, schedule
}
