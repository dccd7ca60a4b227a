package migrations

import "embed"

// FS contains embedded SQLite migrations for model storage.
//
//go:embed *.sql
var FS embed.FS
