// Package migrations embeds the goose migration scripts for every supported
// database dialect. The scripts are applied once, idempotently, when the
// store is constructed.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed mysql/*.sql
var MySQL embed.FS
