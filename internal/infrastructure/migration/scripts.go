package migration

import "embed"

//go:embed scripts/*.sql
var embeddedScripts embed.FS

// EmbeddedSource returns the Source over the migration scripts compiled into
// the binary. This is the default for the server; the migrate CLI can point
// at a directory instead.
func EmbeddedSource() Source {
	return NewFSSource(embeddedScripts, "scripts")
}
