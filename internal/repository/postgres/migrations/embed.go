// Package migrations embeds the golang-migrate files for PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
