package schema

import "fmt"

// Registry is the validated, immutable description of every table. It is safe
// for concurrent use; accessors return copies.
type Registry struct {
	tables  []Table
	byName  map[string]int
	enums   []Enum
	enumIdx map[string]int
}

func newRegistry(tables []Table, enums []Enum) *Registry {
	r := &Registry{
		tables:  tables,
		byName:  make(map[string]int, len(tables)),
		enums:   make([]Enum, len(enums)),
		enumIdx: make(map[string]int, len(enums)),
	}
	for i, t := range tables {
		r.byName[t.Name] = i
	}
	for i, e := range enums {
		r.enums[i] = e.clone()
		r.enumIdx[e.Name] = i
	}
	return r
}

// Tables returns every table, referenced tables before referencing ones.
func (r *Registry) Tables() []Table {
	out := make([]Table, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.clone()
	}
	return out
}

// TableNames returns the table names in dependency order.
func (r *Registry) TableNames() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the named table.
func (r *Registry) Table(name string) (Table, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[i].clone(), true
}

// Enums returns every enum in declaration order.
func (r *Registry) Enums() []Enum {
	out := make([]Enum, len(r.enums))
	for i, e := range r.enums {
		out[i] = e.clone()
	}
	return out
}

// Enum returns the named enum.
func (r *Registry) Enum(name string) (Enum, bool) {
	i, ok := r.enumIdx[name]
	if !ok {
		return Enum{}, false
	}
	return r.enums[i].clone(), true
}

// ForeignKeys returns every foreign key in the registry.
func (r *Registry) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, t := range r.tables {
		fks = append(fks, t.ForeignKeys()...)
	}
	return fks
}

// References returns the foreign keys that point at table.
func (r *Registry) References(table string) []ForeignKey {
	var fks []ForeignKey
	for _, fk := range r.ForeignKeys() {
		if fk.References.Table == table {
			fks = append(fks, fk)
		}
	}
	return fks
}

// CheckValue verifies value against the enum of table.column. Non-enum
// columns accept any value. It is the fallback for input that did not pass
// through a typed Go value.
func (r *Registry) CheckValue(table, column, value string) error {
	t, ok := r.Table(table)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	c, ok := t.Column(column)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, column)
	}
	if c.Type != TypeEnum {
		return nil
	}
	e, _ := r.Enum(c.Enum)
	if !e.Contains(value) {
		return fmt.Errorf("%w: %q is not a legal %s for %s.%s", ErrIllegalValue, value, e.Name, table, column)
	}
	return nil
}
