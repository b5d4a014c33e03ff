package schema

import (
	"errors"
	"fmt"
)

type pendingIndex struct {
	table string
	index Index
}

// Builder collects declarations. It is not safe for concurrent use; build the
// registry once during start-up.
type Builder struct {
	enums   []Enum
	tables  []Table
	indexes []pendingIndex
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Enum declares an enumerated domain.
func (b *Builder) Enum(name string, values ...string) *Builder {
	b.enums = append(b.enums, Enum{Name: name, Values: append([]string(nil), values...)})
	return b
}

// Table declares a table with its columns.
func (b *Builder) Table(name string, columns ...Column) *Builder {
	t := Table{Name: name, Columns: make([]Column, len(columns))}
	for i, c := range columns {
		t.Columns[i] = c.clone()
	}
	b.tables = append(b.tables, t)
	return b
}

// UniqueIndex declares a unique index over one or more columns of table.
func (b *Builder) UniqueIndex(table, name string, columns ...string) *Builder {
	b.indexes = append(b.indexes, pendingIndex{
		table: table,
		index: Index{Name: name, Columns: append([]string(nil), columns...), Unique: true},
	})
	return b
}

// MustBuild is Build for declarations that are fixed at compile time. It
// panics on a structural error.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// Build validates every declaration and returns the immutable registry. All
// structural problems are reported together.
func (b *Builder) Build() (*Registry, error) {
	var errs []error
	report := func(sentinel error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
	}

	enums := make(map[string]Enum, len(b.enums))
	for _, e := range b.enums {
		if e.Name == "" {
			report(ErrInvalidName, "enum with empty name")
			continue
		}
		if _, dup := enums[e.Name]; dup {
			report(ErrDuplicateEnum, "%s", e.Name)
			continue
		}
		if len(e.Values) == 0 {
			report(ErrEmptyEnum, "%s", e.Name)
		}
		seen := make(map[string]bool, len(e.Values))
		for _, v := range e.Values {
			if v == "" {
				report(ErrEmptyEnumValue, "%s", e.Name)
				continue
			}
			if seen[v] {
				report(ErrDuplicateEnumValue, "%s.%s", e.Name, v)
			}
			seen[v] = true
		}
		enums[e.Name] = e
	}

	tables := make(map[string]*Table, len(b.tables))
	ordered := make([]*Table, 0, len(b.tables))
	for i := range b.tables {
		t := b.tables[i].clone()
		if t.Name == "" {
			report(ErrInvalidName, "table with empty name")
			continue
		}
		if _, dup := tables[t.Name]; dup {
			report(ErrDuplicateTable, "%s", t.Name)
			continue
		}
		tables[t.Name] = &t
		ordered = append(ordered, &t)
		validateColumns(t, enums, report)
	}

	indexNames := make(map[string]bool)
	for _, p := range b.indexes {
		t, ok := tables[p.table]
		if !ok {
			report(ErrUnknownTable, "index %s on %s", p.index.Name, p.table)
			continue
		}
		if p.index.Name == "" || len(p.index.Columns) == 0 {
			report(ErrInvalidName, "index on %s needs a name and at least one column", p.table)
			continue
		}
		if indexNames[p.index.Name] {
			report(ErrDuplicateIndex, "%s", p.index.Name)
			continue
		}
		indexNames[p.index.Name] = true
		for _, col := range p.index.Columns {
			if _, ok := t.Column(col); !ok {
				report(ErrUnknownColumn, "index %s: %s.%s", p.index.Name, p.table, col)
			}
		}
		t.Indexes = append(t.Indexes, p.index)
	}

	for _, t := range ordered {
		for _, fk := range t.ForeignKeys() {
			target, ok := tables[fk.References.Table]
			if !ok {
				report(ErrUnknownTable, "%s.%s references %s", fk.Table, fk.Column, fk.References.Table)
				continue
			}
			col, ok := target.Column(fk.References.Column)
			if !ok {
				report(ErrUnknownColumn, "%s.%s references %s.%s", fk.Table, fk.Column, fk.References.Table, fk.References.Column)
				continue
			}
			if !col.PrimaryKey {
				report(ErrNotPrimaryKey, "%s.%s references %s.%s", fk.Table, fk.Column, fk.References.Table, fk.References.Column)
				continue
			}
			source, _ := t.Column(fk.Column)
			if !integerLike(source.Type) || !integerLike(col.Type) {
				report(ErrTypeMismatch, "%s.%s (%s) references %s.%s (%s)",
					fk.Table, fk.Column, source.Type, fk.References.Table, fk.References.Column, col.Type)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sorted, err := dependencyOrder(ordered)
	if err != nil {
		return nil, err
	}

	return newRegistry(sorted, b.enums), nil
}

func validateColumns(t Table, enums map[string]Enum, report func(error, string, ...any)) {
	if len(t.Columns) == 0 {
		report(ErrNoPrimaryKey, "%s has no columns", t.Name)
		return
	}
	seen := make(map[string]bool, len(t.Columns))
	pks := 0
	for _, c := range t.Columns {
		if c.Name == "" {
			report(ErrInvalidName, "column with empty name in %s", t.Name)
			continue
		}
		if seen[c.Name] {
			report(ErrDuplicateColumn, "%s.%s", t.Name, c.Name)
			continue
		}
		seen[c.Name] = true
		if c.PrimaryKey {
			pks++
		}
		switch c.Type {
		case TypeVarchar:
			if c.Length <= 0 {
				report(ErrInvalidColumn, "%s.%s: varchar needs a positive length", t.Name, c.Name)
			}
		case TypeEnum:
			e, ok := enums[c.Enum]
			if !ok {
				report(ErrUnknownEnum, "%s.%s uses %q", t.Name, c.Name, c.Enum)
				continue
			}
			if c.Default != nil && (c.Default.Kind != DefaultLiteral || !e.Contains(c.Default.Value)) {
				report(ErrInvalidDefault, "%s.%s default %q is not in %s", t.Name, c.Name, c.Default.Value, e.Name)
			}
		case TypeSerial, TypeInteger, TypeText, TypeTimestamp, TypeDecimal:
		default:
			report(ErrInvalidColumn, "%s.%s: unknown type %q", t.Name, c.Name, c.Type)
		}
		if c.Default != nil && c.Default.Kind == DefaultNow && c.Type != TypeTimestamp {
			report(ErrInvalidDefault, "%s.%s: now() default on a %s column", t.Name, c.Name, c.Type)
		}
	}
	switch {
	case pks == 0:
		report(ErrNoPrimaryKey, "%s", t.Name)
	case pks > 1:
		report(ErrMultiplePrimaryKey, "%s", t.Name)
	}
}

func integerLike(t ColumnType) bool {
	return t == TypeSerial || t == TypeInteger
}

// dependencyOrder sorts tables so every table follows the tables it
// references, keeping declaration order where references allow it.
func dependencyOrder(tables []*Table) ([]Table, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	state := make(map[string]int, len(tables))
	out := make([]Table, 0, len(tables))

	var visit func(t *Table) error
	visit = func(t *Table) error {
		switch state[t.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: through %s", ErrReferenceCycle, t.Name)
		}
		state[t.Name] = visiting
		for _, fk := range t.ForeignKeys() {
			if fk.References.Table == t.Name {
				continue
			}
			if err := visit(byName[fk.References.Table]); err != nil {
				return err
			}
		}
		state[t.Name] = done
		out = append(out, *t)
		return nil
	}

	for _, t := range tables {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
