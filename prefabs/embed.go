// Package prefabs holds the data-driven tuning of the experience: the asset
// manifest, per-action interactor presets, session settings, and the
// optional rules script. Everything is embedded for distribution and
// overridable from a prefabs/ directory on disk during development.
package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var prefabsFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load returns the named prefab file, preferring a disk copy under
// prefabs/ so edits apply without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return prefabsFS.ReadFile(clean)
}

// LoadScript returns the named tuning script, with the same disk override.
// A missing script is not an error to callers that treat it as optional.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "prefabs/")
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
