package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{"postgres": Postgres, "PostgreSQL": Postgres, "sqlite3": SQLite, " sqlite ": SQLite} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDialect("mysql")
	assert.Error(t, err)
	assert.Equal(t, "postgres", Postgres.String())
	assert.Equal(t, "sqlite", SQLite.String())
}

func TestRegistry_DDL_Postgres(t *testing.T) {
	stmts := Default().DDL(Postgres)

	require.GreaterOrEqual(t, len(stmts), 3)
	assert.Equal(t, `CREATE TYPE "status" AS ENUM ('active', 'inactive')`, stmts[0])
	assert.Equal(t, `CREATE TYPE "payment" AS ENUM ('pending', 'in-progress', 'complete')`, stmts[1])
	assert.Equal(t, `CREATE TYPE "timeBetweenPayments" AS ENUM ('every-day', 'every-week', 'every-two-weeks', 'every-month')`, stmts[2])

	script := Script(stmts)
	assert.Contains(t, script, `"id" serial PRIMARY KEY`)
	assert.Contains(t, script, `"status" "status" DEFAULT 'active'`)
	assert.Contains(t, script, `"client_id" integer REFERENCES "clients"("id")`)
	assert.Contains(t, script, `"time_between_payments" "timeBetweenPayments" NOT NULL DEFAULT 'every-week'`)
	assert.Contains(t, script, `"email" varchar(255) NOT NULL UNIQUE`)
	assert.Contains(t, script, `"created_at" timestamp NOT NULL DEFAULT now()`)
	assert.Contains(t, script, `"total" numeric NOT NULL`)
	assert.Contains(t, script, `CREATE UNIQUE INDEX "credit_payments_credit_id_nro_key" ON "credit_payments" ("credit_id", "nro")`)
	assert.True(t, strings.HasSuffix(script, ";\n"))
}

func TestRegistry_DDL_SQLite(t *testing.T) {
	script := Script(Default().DDL(SQLite))

	assert.NotContains(t, script, "CREATE TYPE")
	assert.Contains(t, script, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	assert.Contains(t, script, `"status" TEXT DEFAULT 'active' CHECK ("status" IN ('active', 'inactive'))`)
	assert.Contains(t, script, `"joined_at" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP`)
	assert.Contains(t, script, `"credit_amount" TEXT NOT NULL`)
}

func TestRegistry_DDL_TableOrderFollowsReferences(t *testing.T) {
	stmts := Default().DDL(Postgres)
	pos := func(table string) int {
		for i, s := range stmts {
			if strings.HasPrefix(s, `CREATE TABLE "`+table+`"`) {
				return i
			}
		}
		t.Fatalf("no CREATE TABLE for %s", table)
		return -1
	}
	for _, fk := range Default().ForeignKeys() {
		if fk.Table != fk.References.Table {
			assert.Less(t, pos(fk.References.Table), pos(fk.Table), "%s before %s", fk.References.Table, fk.Table)
		}
	}
}

func TestRegistry_DropDDL(t *testing.T) {
	pg := Default().DropDDL(Postgres)
	assert.Equal(t, `DROP TABLE IF EXISTS "invitations"`, pg[0])
	assert.Equal(t, `DROP TYPE IF EXISTS "status"`, pg[len(pg)-1])

	lite := Default().DropDDL(SQLite)
	assert.Len(t, lite, 9)
	assert.Equal(t, `DROP TABLE IF EXISTS "clients"`, lite[len(lite)-1])
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, `'it''s'`, quoteLiteral("it's"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
	assert.Equal(t, "", Script(nil))
}
