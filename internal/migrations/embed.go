// Package migrations embeds the versioned SQL migrations that create
// the advisor platform schema: the updated_at trigger function and the
// users, instruments, accounts, positions, and jobs tables.
//
// Files follow golang-migrate naming (NNNNNN_name.up.sql / .down.sql)
// and are applied by cmd/migrate through internal/database/migration.
package migrations

import "embed"

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS

// Path is the migrations root inside FS.
const Path = "."
