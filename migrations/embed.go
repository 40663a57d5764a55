// Package migrations embeds the Postgres schema for the bed store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
