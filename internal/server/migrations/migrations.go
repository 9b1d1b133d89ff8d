// Package migrations embeds the goose schema migrations for the SQL table
// backends, one directory per dialect.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
