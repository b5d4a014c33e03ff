// Package schema declares the relational layout of the application: tables,
// columns, enumerated domains, foreign keys and unique indexes.
//
// Declarations are collected by a Builder and validated once by Build, which
// returns an immutable Registry or every structural problem it found. The
// registry renders DDL for PostgreSQL and SQLite and can check GORM models and
// live databases against the declared layout. It performs no I/O of its own
// apart from the verification helpers, which run against a caller-supplied
// *gorm.DB.
package schema
