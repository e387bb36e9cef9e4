// Package migrations holds the goose SQL migrations for the PostgreSQL schema.
package migrations

import "embed"

// FS contains every migration file, read by goose at startup and in tests.
//
//go:embed *.sql
var FS embed.FS
