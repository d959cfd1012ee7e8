// Package migrations embeds the goose SQL migrations so both the server and
// the test helpers can apply the schema without relying on a working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
