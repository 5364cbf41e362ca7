package config

import (
	_ "embed"
)

//go:embed defaults/flatworld.yaml
var defaultFlatworldYAML []byte

// DefaultFlatworldConfig returns the default Flatworld configuration.
func DefaultFlatworldConfig() FlatworldConfig {
	return FlatworldConfig{
		Board: BoardConfig{
			GridSize:    8,
			TokenCount:  10,
			ReserveLast: true,
		},
		Animation: AnimationConfig{
			SlideSeconds: 0.25,
			ExitSeconds:  0.4,
			ToastSeconds: 1.5,
			Easing:       "out_quad",
		},
		Variants: map[string]BoardConfig{
			"small": {
				GridSize:    6,
				TokenCount:  7,
				ReserveLast: true,
			},
			"large": {
				GridSize:    12,
				TokenCount:  18,
				ReserveLast: true,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flatworld":
		return defaultFlatworldYAML
	default:
		return nil
	}
}
