// Package migrations embeds the Postgres schema applied by core/database.
package migrations

import "embed"

// FS holds the numbered up/down SQL files.
//
//go:embed *.sql
var FS embed.FS
