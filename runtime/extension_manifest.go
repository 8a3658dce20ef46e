package runtime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExtensionManifest describes a set of extensions to load and the order
// constraints between them, as read from an on-disk YAML file (analogous to
// php.ini's extension= directives, but declarative about load order instead
// of relying on file-scan order).
type ExtensionManifest struct {
	Extensions []ManifestEntry `yaml:"extensions"`
}

// ManifestEntry is one extension's manifest-level metadata. The extension
// itself must still be registered in code via RegisterExtension; the
// manifest only supplies load order and enable/disable toggles so that
// deployment config doesn't require recompiling the engine.
type ManifestEntry struct {
	Name      string `yaml:"name"`
	LoadOrder int    `yaml:"load_order"`
	Enabled   bool   `yaml:"enabled"`
}

// LoadExtensionManifest parses a YAML extension manifest from path.
func LoadExtensionManifest(path string) (*ExtensionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extension manifest: %w", err)
	}
	var manifest ExtensionManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse extension manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// ApplyManifest reorders and enables/disables already-registered extensions
// to match the manifest. Extensions named in the manifest but never
// registered in code are ignored; extensions registered in code but absent
// from the manifest keep their compiled-in load order.
func (em *ExtensionManager) ApplyManifest(manifest *ExtensionManifest) error {
	for _, entry := range manifest.Extensions {
		ext, ok := em.GetExtension(entry.Name)
		if !ok {
			continue
		}
		if base, ok := ext.(*BaseExtension); ok {
			base.SetLoadOrder(entry.LoadOrder)
		}
		if !entry.Enabled && em.IsExtensionLoaded(entry.Name) {
			if err := em.UnloadExtension(entry.Name); err != nil {
				return fmt.Errorf("disable extension %s: %w", entry.Name, err)
			}
		}
	}
	em.rebuildLoadOrder()
	return nil
}
