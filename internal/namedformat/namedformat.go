// Package namedformat holds timegrep's compiled-in table of named datetime
// formats (and their aliases), plus the fixed-order heuristic fallback
// chain used to parse --start/--stop values that don't match the active
// format.
package namedformat

import "fmt"

// entry is either a concrete format string or an alias pointing at another
// named entry.
type entry struct {
	format string
	alias  string
}

var table = map[string]entry{
	"default": {format: "%Y-%m-%d %H:%M:%S"},
	"iso":     {format: "%Y-%m-%dT%H:%M:%S%z"},
	"common":  {format: "%d/%b/%Y:%H:%M:%S %z"},
	"syslog":  {format: "%b %d %H:%M:%S"},
	"tskv":    {format: "unixtime=%s"},
	"apache":  {alias: "common"},
	"nginx":   {alias: "common"},
}

// HeuristicFormats is the fixed-order fallback chain tried against a
// --start/--stop value when the active format fails to parse it. The order
// is part of the observable interface and must not change: a bare
// "2020-01-02" always resolves as %Y-%m-%d, never %d-%m-%Y.
var HeuristicFormats = []string{
	"%Y-%m-%d %H:%M:%S",
	"%Y-%m-%d",
	"%Y/%m/%d",
	"%Y.%m.%d",
	"%d-%m-%Y",
	"%d/%m/%Y",
	"%d.%m.%Y",
}

// Resolve looks up name in the compiled-in table, following alias links
// until a concrete format string is reached. If name isn't in the table,
// it's returned unchanged, on the assumption that the caller passed a
// literal strptime-style format string instead of a named one.
func Resolve(name string) (string, error) {
	seen := make(map[string]bool)
	current := name
	for {
		e, ok := table[current]
		if !ok {
			if current == name {
				return name, nil
			}
			return "", fmt.Errorf("named format %q aliases unknown format %q", name, current)
		}
		if e.alias == "" {
			return e.format, nil
		}
		if seen[current] {
			return "", fmt.Errorf("alias cycle detected starting at %q", name)
		}
		seen[current] = true
		current = e.alias
	}
}

// Names returns the table's names in a stable, documentation-friendly
// order, concrete formats before their aliases.
func Names() []string {
	return []string{"default", "iso", "common", "syslog", "tskv", "apache", "nginx"}
}
