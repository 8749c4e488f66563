// Package migrations embeds the credential store schema so the binary needs
// no external migration files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
