package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

var modelCache sync.Map

// VerifyModel parses a GORM model and checks it against the declared table
// named by the model's TableName: every declared column must be mapped, no
// unmapped column may be present, the primary key must agree and field
// kinds must be storable in the declared type.
func (r *Registry) VerifyModel(model any) error {
	s, err := gormschema.Parse(model, &modelCache, gormschema.NamingStrategy{})
	if err != nil {
		return fmt.Errorf("parse model %T: %w", model, err)
	}
	t, ok := r.Table(s.Table)
	if !ok {
		return fmt.Errorf("%w: %T maps to undeclared table %q", ErrModelMismatch, model, s.Table)
	}

	var errs []error
	mismatch := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrModelMismatch, t.Name, fmt.Sprintf(format, args...)))
	}

	for _, c := range t.Columns {
		f := s.LookUpField(c.Name)
		if f == nil || f.DBName != c.Name {
			mismatch("column %s has no field", c.Name)
			continue
		}
		if c.PrimaryKey != f.PrimaryKey {
			mismatch("column %s primary key %t, field %s primary key %t", c.Name, c.PrimaryKey, f.Name, f.PrimaryKey)
		}
		if !storable(c, f.DataType) {
			mismatch("column %s is %s, field %s is %s", c.Name, c.Type, f.Name, f.DataType)
		}
		if c.Type == TypeVarchar && f.DataType == gormschema.String && f.Size > 0 && f.Size != c.Length {
			mismatch("column %s is varchar(%d), field %s has size %d", c.Name, c.Length, f.Name, f.Size)
		}
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		if _, ok := t.Column(f.DBName); !ok {
			mismatch("field %s maps to undeclared column %s (declared: %s)",
				f.Name, f.DBName, strings.Join(t.ColumnNames(), ", "))
		}
	}
	return errors.Join(errs...)
}

// storable reports whether a field of the parsed data type can hold values of
// column c. Explicit type tags must name the declared SQL type.
func storable(c Column, dt gormschema.DataType) bool {
	tag := strings.ToLower(string(dt))
	switch c.Type {
	case TypeSerial, TypeInteger:
		return dt == gormschema.Int || dt == gormschema.Uint || tag == "integer" || tag == "serial"
	case TypeVarchar:
		return dt == gormschema.String || tag == fmt.Sprintf("varchar(%d)", c.Length)
	case TypeText:
		return dt == gormschema.String || tag == "text"
	case TypeEnum:
		return dt == gormschema.String || string(dt) == c.Enum
	case TypeTimestamp:
		return dt == gormschema.Time || tag == "timestamp"
	case TypeDecimal:
		return dt == gormschema.String || strings.HasPrefix(tag, "numeric") || strings.HasPrefix(tag, "decimal")
	default:
		return false
	}
}

// VerifyDatabase checks that every declared table, column and index exists in
// the connected database.
func (r *Registry) VerifyDatabase(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	var errs []error
	for _, t := range r.tables {
		if !m.HasTable(t.Name) {
			errs = append(errs, fmt.Errorf("%w: table %s is missing", ErrDatabaseMismatch, t.Name))
			continue
		}
		for _, c := range t.Columns {
			if !m.HasColumn(t.Name, c.Name) {
				errs = append(errs, fmt.Errorf("%w: column %s.%s is missing", ErrDatabaseMismatch, t.Name, c.Name))
			}
		}
		for _, idx := range t.Indexes {
			if !m.HasIndex(t.Name, idx.Name) {
				errs = append(errs, fmt.Errorf("%w: index %s on %s is missing", ErrDatabaseMismatch, idx.Name, t.Name))
			}
		}
	}
	return errors.Join(errs...)
}
