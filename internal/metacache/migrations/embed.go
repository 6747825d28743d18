// Package migrations embeds the metadata cache's SQL migration files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
