// Package migrations embeds the goose migration files shared by the history
// and replica stores (the two schemas are identical).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
