package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrateLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &migrateLogger{logger: zap.New(core)}

	assert.True(t, l.Verbose())
	l.Printf("Start buffering %d/u %s\n", 1, "initial_schema")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Start buffering 1/u initial_schema", entries[0].Message)
		assert.Equal(t, "migrate", entries[0].ContextMap()["component"])
	}

	quiet := &migrateLogger{logger: zap.New(zapcore.NewNopCore())}
	assert.False(t, quiet.Verbose())
}

func TestMigrator_StepsRejectsZero(t *testing.T) {
	m := &Migrator{logger: zap.NewNop()}
	assert.Error(t, m.Steps(0))
}
