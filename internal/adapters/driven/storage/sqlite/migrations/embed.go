// Package migrations holds the versioned schema files for the document store.
package migrations

import "embed"

// FS exposes the .sql migration files, applied in lexical order by the
// store's migrate step.
//
//go:embed *.sql
var FS embed.FS
