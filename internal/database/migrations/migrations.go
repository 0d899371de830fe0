// Package migrations embeds the goose migration files for each SQL dialect.
package migrations

import "embed"

//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
