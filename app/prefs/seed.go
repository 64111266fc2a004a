package prefs

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefaults overlays an optional YAML seed file on the built-in defaults.
// An empty path returns the built-in defaults unchanged.
func LoadDefaults(path string) (Prefs, error) {
	defaults := Defaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prefs{}, fmt.Errorf("failed to read preferences file %s: %w", path, err)
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Prefs{}, fmt.Errorf("failed to parse preferences file %s: %w", path, err)
	}

	seeded := o.applyTo(defaults)
	if err := seeded.Validate(); err != nil {
		return Prefs{}, fmt.Errorf("invalid preferences file %s: %w", path, err)
	}

	slog.Info("Loaded preference defaults", "path", path, "mappings", len(seeded.GenreMappings))
	return seeded, nil
}
