package schema

// ColumnType is the storage type of a column, independent of dialect.
type ColumnType string

const (
	TypeSerial    ColumnType = "serial"
	TypeInteger   ColumnType = "integer"
	TypeVarchar   ColumnType = "varchar"
	TypeText      ColumnType = "text"
	TypeTimestamp ColumnType = "timestamp"
	TypeDecimal   ColumnType = "decimal"
	TypeEnum      ColumnType = "enum"
)

// Reference is the target of a foreign key.
type Reference struct {
	Table  string
	Column string
}

// Column describes one column. Columns are built with the constructors below
// and refined with the chainable methods, each of which returns a copy.
type Column struct {
	Name       string
	Type       ColumnType
	Length     int // varchar only
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Enum       string // enum name, TypeEnum only
	Default    *ColumnDefault
	References *Reference
}

// DefaultKind distinguishes literal defaults from the current time.
type DefaultKind int

const (
	DefaultLiteral DefaultKind = iota
	DefaultNow
)

// ColumnDefault is a column default.
type ColumnDefault struct {
	Kind  DefaultKind
	Value string
}

// Serial declares an auto-incrementing integer primary key.
func Serial(name string) Column {
	return Column{Name: name, Type: TypeSerial, PrimaryKey: true}
}

// Integer declares a nullable integer column.
func Integer(name string) Column {
	return Column{Name: name, Type: TypeInteger, Nullable: true}
}

// Varchar declares a nullable varchar(length) column.
func Varchar(name string, length int) Column {
	return Column{Name: name, Type: TypeVarchar, Length: length, Nullable: true}
}

// Text declares a nullable text column.
func Text(name string) Column {
	return Column{Name: name, Type: TypeText, Nullable: true}
}

// Timestamp declares a nullable timestamp column.
func Timestamp(name string) Column {
	return Column{Name: name, Type: TypeTimestamp, Nullable: true}
}

// Decimal declares a nullable exact decimal column.
func Decimal(name string) Column {
	return Column{Name: name, Type: TypeDecimal, Nullable: true}
}

// EnumColumn declares a nullable column typed by a declared enum.
func EnumColumn(name, enum string) Column {
	return Column{Name: name, Type: TypeEnum, Enum: enum, Nullable: true}
}

// NotNull marks the column as required.
func (c Column) NotNull() Column {
	c.Nullable = false
	return c
}

// AsUnique adds a single-column unique constraint.
func (c Column) AsUnique() Column {
	c.Unique = true
	return c
}

// DefaultTo sets a literal default.
func (c Column) DefaultTo(value string) Column {
	c.Default = &ColumnDefault{Kind: DefaultLiteral, Value: value}
	return c
}

// DefaultNow defaults the column to the insert time.
func (c Column) DefaultNow() Column {
	c.Default = &ColumnDefault{Kind: DefaultNow}
	return c
}

// ReferencesColumn adds a foreign key to table.column.
func (c Column) ReferencesColumn(table, column string) Column {
	c.References = &Reference{Table: table, Column: column}
	return c
}

// HasDefault reports whether the column declares a default.
func (c Column) HasDefault() bool {
	return c.Default != nil
}

// RequiredOnInsert reports whether an insert must supply the column: it is
// not nullable, has no default and is not generated.
func (c Column) RequiredOnInsert() bool {
	return !c.Nullable && c.Default == nil && c.Type != TypeSerial
}

func (c Column) clone() Column {
	if c.Default != nil {
		d := *c.Default
		c.Default = &d
	}
	if c.References != nil {
		r := *c.References
		c.References = &r
	}
	return c
}
