// Package migrations embeds the per-backend SQL migration files so the
// binary never depends on a migrations directory being present on disk.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
