// Package migrations содержит SQL миграции goose, встроенные в бинарник
package migrations

import "embed"

// FS встроенные файлы миграций
//
//go:embed *.sql
var FS embed.FS
