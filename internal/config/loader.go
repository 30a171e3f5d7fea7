package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const wellFile = "well.yaml"

// LoadWell loads the well configuration.
// Search order: customPath -> ~/.tetris3d/configs/well.yaml -> ./configs/well.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
// A custom path that cannot be read, parsed or validated is an error; misses
// and broken files on the search path fall through to the next candidate.
func LoadWell(customPath string) (WellConfig, error) {
	if customPath != "" {
		cfg, err := readWell(customPath)
		if err != nil {
			return DefaultWellConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultWellConfig(), fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(wellFile),
		filepath.Join("configs", wellFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := readWell(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := DefaultWellConfig()
	if err := yaml.Unmarshal(defaultWellYAML, &cfg); err != nil {
		return DefaultWellConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readWell decodes path over the default configuration.
func readWell(path string) (WellConfig, error) {
	cfg := DefaultWellConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris3d", "configs", filename)
}
