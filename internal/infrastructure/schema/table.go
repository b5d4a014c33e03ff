package schema

// Enum is a closed set of legal string values.
type Enum struct {
	Name   string
	Values []string
}

// Contains reports whether v is one of the enum's values.
func (e Enum) Contains(v string) bool {
	for _, candidate := range e.Values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Index is a named (possibly multi-column) index on one table.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// ForeignKey is a column pointing at another table's primary key.
type ForeignKey struct {
	Table      string
	Column     string
	References Reference
}

// Table describes one table.
type Table struct {
	Name    string
	Columns []Column
	Indexes []Index
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the primary key column.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// RequiredOnInsert returns the columns an insert must supply.
func (t Table) RequiredOnInsert() []string {
	var names []string
	for _, c := range t.Columns {
		if c.RequiredOnInsert() {
			names = append(names, c.Name)
		}
	}
	return names
}

// ForeignKeys returns the outgoing foreign keys of the table.
func (t Table) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, c := range t.Columns {
		if c.References != nil {
			fks = append(fks, ForeignKey{Table: t.Name, Column: c.Name, References: *c.References})
		}
	}
	return fks
}

func (t Table) clone() Table {
	out := Table{Name: t.Name}
	out.Columns = make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
	}
	out.Indexes = make([]Index, len(t.Indexes))
	for i, idx := range t.Indexes {
		idx.Columns = append([]string(nil), idx.Columns...)
		out.Indexes[i] = idx
	}
	return out
}

func (e Enum) clone() Enum {
	return Enum{Name: e.Name, Values: append([]string(nil), e.Values...)}
}
