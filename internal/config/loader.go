package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlatworld loads Flatworld configuration.
// Search order: customPath -> ~/.flatworld/configs/flatworld.yaml -> ./configs/flatworld.yaml -> embedded default
//
// A file found on the search path that does not validate is skipped; a
// custom path that does not validate is an error.
func LoadFlatworld(customPath string) (FlatworldConfig, error) {
	var cfg FlatworldConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err = parseFlatworld(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flatworld.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseFlatworld(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flatworld.yaml"); err == nil {
		if cfg, err := parseFlatworld(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseFlatworld(defaultFlatworldYAML)
	if err != nil {
		return DefaultFlatworldConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseFlatworld decodes YAML over the hard-coded defaults, so a file only
// needs the keys it changes, then validates the result.
func parseFlatworld(data []byte) (FlatworldConfig, error) {
	cfg := DefaultFlatworldConfig()
	cfg.Variants = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Variants == nil {
		cfg.Variants = DefaultFlatworldConfig().Variants
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flatworld", "configs", filename)
}
