// Package migrations embeds the SQL schema for every supported database.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
