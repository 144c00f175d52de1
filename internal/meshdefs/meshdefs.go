// Package meshdefs reads the MeshDefs.lua companion file that the game
// tooling ships next to compiled assets. Each resource block carries
// per-model build parameters; the converter only consumes the
// compression booleans, the rest is kept as opaque values.
package meshdefs

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/veilbreaker/skymesh/pkg/mesh"
)

// resourcePattern matches one `resource "Mesh" "<name>" { ... }` block.
// The definitions file is Lua, but the blocks are regular enough that a
// full Lua interpreter would be overkill.
var resourcePattern = regexp.MustCompile(`resource\s+"Mesh"\s+"([^"]+)"\s*\{([^}]+)\}`)

// Entry is the parameter set of one mesh resource block. Values are
// bool, int64 or string depending on how they were written.
type Entry map[string]any

// Bool returns a boolean parameter, false when absent or not a bool.
func (e Entry) Bool(key string) bool {
	v, ok := e[key].(bool)
	return ok && v
}

// Table maps model names to their definition entries.
type Table map[string]Entry

// Parse extracts all mesh resource blocks from definitions content.
func Parse(content []byte) Table {
	t := make(Table)
	for _, m := range resourcePattern.FindAllStringSubmatch(string(content), -1) {
		name, block := m[1], m[2]
		entry := make(Entry)
		for _, line := range strings.Split(block, ",") {
			k, v, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			entry[strings.TrimSpace(k)] = coerce(strings.TrimSpace(v))
		}
		t[name] = entry
	}
	return t
}

// Load reads and parses a definitions file.
func Load(path string) (Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh definitions: %w", err)
	}
	return Parse(content), nil
}

// Flags returns the decoder flags for a model name, or nil when the
// table has no entry for it.
func (t Table) Flags(name string) *mesh.Flags {
	entry, ok := t[name]
	if !ok {
		return nil
	}
	return &mesh.Flags{
		CompressPositions: entry.Bool("compressPositions"),
		CompressUVs:       entry.Bool("compressUvs"),
	}
}

// coerce converts a Lua literal to its Go value.
func coerce(v string) any {
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) && len(v) >= 2 {
		return strings.Trim(v, `"`)
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}
