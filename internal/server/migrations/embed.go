// Package migrations embeds the goose SQL migrations. Each supported SQL
// dialect keeps its own directory; the repository manager picks one by driver.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
