// Package migrations embeds the SQL migration files so binaries and tests can
// run them without a checkout.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
