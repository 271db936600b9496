// Package migrations embeds SQLite migrations for task storage.
package migrations

import "embed"

// FS contains embedded SQLite migrations for task storage.
//
//go:embed *.sql
var FS embed.FS
