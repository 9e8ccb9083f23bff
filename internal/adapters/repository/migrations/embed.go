// Package migrations embeds the SQLite schema migrations for the roster
// store.
package migrations

import "embed"

// FS contains the embedded migration files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
