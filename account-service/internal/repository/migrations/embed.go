// Package migrations embeds the SQL schema for each supported database.
package migrations

import "embed"

// Postgres holds the migrations applied by the Postgres account store.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the migrations applied by the SQLite account store.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
