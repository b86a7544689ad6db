// Package migrations contains the embedded database migrations.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var sqlFS embed.FS

// FS contains the migration files in lexical order.
var FS fs.FS = sqlFS
