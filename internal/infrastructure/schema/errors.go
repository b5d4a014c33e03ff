package schema

import "errors"

// Structural errors reported by Builder.Build. Each reported problem wraps one
// of these so callers can match it with errors.Is.
var (
	ErrInvalidName        = errors.New("schema: invalid name")
	ErrDuplicateEnum      = errors.New("schema: duplicate enum")
	ErrEmptyEnum          = errors.New("schema: enum has no values")
	ErrEmptyEnumValue     = errors.New("schema: enum has an empty value")
	ErrDuplicateEnumValue = errors.New("schema: enum has a duplicate value")
	ErrDuplicateTable     = errors.New("schema: duplicate table")
	ErrDuplicateColumn    = errors.New("schema: duplicate column")
	ErrNoPrimaryKey       = errors.New("schema: table has no primary key")
	ErrMultiplePrimaryKey = errors.New("schema: table has more than one primary key")
	ErrInvalidColumn      = errors.New("schema: invalid column")
	ErrUnknownEnum        = errors.New("schema: column references an undeclared enum")
	ErrInvalidDefault     = errors.New("schema: default is not a legal value")
	ErrUnknownTable       = errors.New("schema: reference to an undeclared table")
	ErrUnknownColumn      = errors.New("schema: reference to an undeclared column")
	ErrNotPrimaryKey      = errors.New("schema: foreign key does not target a primary key")
	ErrTypeMismatch       = errors.New("schema: foreign key type does not match its target")
	ErrDuplicateIndex     = errors.New("schema: duplicate index")
	ErrReferenceCycle     = errors.New("schema: foreign keys form a cycle")

	// ErrModelMismatch is returned by VerifyModel.
	ErrModelMismatch = errors.New("schema: model does not match table")
	// ErrDatabaseMismatch is returned by VerifyDatabase.
	ErrDatabaseMismatch = errors.New("schema: database does not match registry")
	// ErrIllegalValue is returned by Registry.CheckValue.
	ErrIllegalValue = errors.New("schema: value outside enum")
)
