package migrations

import "embed"

// FS contains embedded SQLite migrations for the submission outcome log.
//
//go:embed *.sql
var FS embed.FS
