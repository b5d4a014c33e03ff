package persistence

import (
	"context"
	"testing"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGormActivityLogRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormActivityLogRepository(db.DB, db.Log)

	team := mustCreateTeam(t, db.DB, "Alpha")
	other := mustCreateTeam(t, db.DB, "Beta")
	u := mustCreateUser(t, db.DB, "ana@example.com")

	actions := []identity.ActivityType{
		identity.ActivitySignUp,
		identity.ActivityCreateTeam,
		identity.ActivitySignIn,
	}
	for _, a := range actions {
		_, err := repo.Append(ctx, identity.ActivityLogInsert{TeamID: team.ID, UserID: &u.ID, Action: a, IPAddress: "203.0.113.7"})
		require.NoError(t, err)
	}
	entry, err := repo.Append(ctx, identity.ActivityLogInsert{TeamID: other.ID, Action: identity.ActivitySignOut})
	require.NoError(t, err)
	assert.Nil(t, entry.UserID)
	assert.False(t, entry.Timestamp.IsZero())

	t.Run("ForTeam newest first with limit", func(t *testing.T) {
		logs, err := repo.ForTeam(ctx, team.ID, 2)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, identity.ActivitySignIn, logs[0].Action)
		assert.Equal(t, identity.ActivityCreateTeam, logs[1].Action)
		assert.Equal(t, "203.0.113.7", logs[0].IPAddress)
	})

	t.Run("ForUser uses default limit", func(t *testing.T) {
		logs, err := repo.ForUser(ctx, u.ID, 0)
		require.NoError(t, err)
		assert.Len(t, logs, 3)
	})

	t.Run("rejects unknown action and bad address", func(t *testing.T) {
		_, err := repo.Append(ctx, identity.ActivityLogInsert{TeamID: team.ID, Action: "HACK"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = repo.Append(ctx, identity.ActivityLogInsert{TeamID: team.ID, Action: identity.ActivitySignIn, IPAddress: "not-an-ip"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown team is a broken reference", func(t *testing.T) {
		_, err := repo.Append(ctx, identity.ActivityLogInsert{TeamID: 9999, Action: identity.ActivitySignIn})
		assert.ErrorIs(t, err, shared.ErrBrokenRef)
	})
}

func TestGormActivityLogRepository_LogsToRepositoryLogger(t *testing.T) {
	db := newTestDatabase(t)
	core, logs := observer.New(zapcore.InfoLevel)
	repo := NewGormActivityLogRepository(db.DB, zap.New(core))

	team := mustCreateTeam(t, db.DB, "Alpha")
	u := mustCreateUser(t, db.DB, "ana@example.com")

	entry, err := repo.Append(context.Background(), identity.ActivityLogInsert{TeamID: team.ID, UserID: &u.ID, Action: identity.ActivitySignIn})
	require.NoError(t, err)

	entries := logs.FilterMessage("Activity recorded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, entry.ID, fields["activity_id"])
	assert.Equal(t, team.ID, fields["team_id"])
	assert.Equal(t, u.ID, fields["user_id"])
	assert.Equal(t, string(identity.ActivitySignIn), fields["action"])
}
