package schema

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour rendered by DDL.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// String returns the dialect name as accepted by ParseDialect.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect converts a driver name into a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported dialect %q", name)
	}
}

// DDL returns the statements that create every enum, table and index, in an
// order that satisfies foreign keys. Statements carry no trailing semicolon.
func (r *Registry) DDL(d Dialect) []string {
	var stmts []string
	if d == Postgres {
		for _, e := range r.enums {
			stmts = append(stmts, fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", quoteIdent(e.Name), literalList(e.Values)))
		}
	}
	for _, t := range r.tables {
		stmts = append(stmts, r.createTable(d, t))
		for _, idx := range t.Indexes {
			stmts = append(stmts, createIndex(t.Name, idx))
		}
	}
	return stmts
}

// DropDDL returns the statements that remove everything DDL creates, in
// reverse dependency order.
func (r *Registry) DropDDL(d Dialect) []string {
	stmts := make([]string, 0, len(r.tables)+len(r.enums))
	for i := len(r.tables) - 1; i >= 0; i-- {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+quoteIdent(r.tables[i].Name))
	}
	if d == Postgres {
		for i := len(r.enums) - 1; i >= 0; i-- {
			stmts = append(stmts, "DROP TYPE IF EXISTS "+quoteIdent(r.enums[i].Name))
		}
	}
	return stmts
}

// Script joins statements into a single SQL script.
func Script(stmts []string) string {
	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, ";\n\n") + ";\n"
}

func (r *Registry) createTable(d Dialect, t Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", quoteIdent(t.Name))
	for i, c := range t.Columns {
		sb.WriteString("\t")
		sb.WriteString(r.columnDefinition(d, c))
		if i < len(t.Columns)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(")")
	return sb.String()
}

func (r *Registry) columnDefinition(d Dialect, c Column) string {
	parts := []string{quoteIdent(c.Name)}

	if c.Type == TypeSerial {
		if d == SQLite {
			parts = append(parts, "INTEGER PRIMARY KEY AUTOINCREMENT")
		} else {
			parts = append(parts, "serial PRIMARY KEY")
		}
		return strings.Join(parts, " ")
	}

	parts = append(parts, columnType(d, c))
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != nil {
		parts = append(parts, "DEFAULT "+defaultExpr(d, *c.Default))
	}
	if c.Unique {
		parts = append(parts, "UNIQUE")
	}
	if c.References != nil {
		parts = append(parts, fmt.Sprintf("REFERENCES %s(%s)", quoteIdent(c.References.Table), quoteIdent(c.References.Column)))
	}
	if c.Type == TypeEnum && d == SQLite {
		e, _ := r.Enum(c.Enum)
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (%s))", quoteIdent(c.Name), literalList(e.Values)))
	}
	return strings.Join(parts, " ")
}

func columnType(d Dialect, c Column) string {
	switch c.Type {
	case TypeInteger:
		if d == SQLite {
			return "INTEGER"
		}
		return "integer"
	case TypeVarchar:
		return fmt.Sprintf("varchar(%d)", c.Length)
	case TypeText:
		return "text"
	case TypeTimestamp:
		if d == SQLite {
			return "DATETIME"
		}
		return "timestamp"
	case TypeDecimal:
		// SQLite would coerce NUMERIC affinity to REAL and lose scale.
		if d == SQLite {
			return "TEXT"
		}
		return "numeric"
	case TypeEnum:
		if d == SQLite {
			return "TEXT"
		}
		return quoteIdent(c.Enum)
	default:
		return string(c.Type)
	}
}

func defaultExpr(d Dialect, def ColumnDefault) string {
	if def.Kind == DefaultNow {
		if d == SQLite {
			return "CURRENT_TIMESTAMP"
		}
		return "now()"
	}
	return quoteLiteral(def.Value)
}

func createIndex(table string, idx Index) string {
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quoteIdent(c)
	}
	kind := "INDEX"
	if idx.Unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s)", kind, quoteIdent(idx.Name), quoteIdent(table), strings.Join(cols, ", "))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func literalList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return strings.Join(quoted, ", ")
}
