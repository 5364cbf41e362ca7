// Package config provides YAML-based configuration loading for Flatworld
// boards and their presentation.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownVariant is returned by Board for a variant that is not configured.
var ErrUnknownVariant = errors.New("config: unknown variant")

// ClassicVariant names the top-level board section.
const ClassicVariant = "classic"

// FlatworldConfig contains all configuration for Flatworld.
type FlatworldConfig struct {
	Board     BoardConfig            `yaml:"board"`
	Animation AnimationConfig        `yaml:"animation"`
	Variants  map[string]BoardConfig `yaml:"variants"` // Named overrides of Board
}

// BoardConfig defines the grid and its roundies.
type BoardConfig struct {
	GridSize    int  `yaml:"grid_size"`
	TokenCount  int  `yaml:"token_count"`
	ReserveLast bool `yaml:"reserve_last"` // Keep the last roundy back for the add action
}

// AnimationConfig defines how long transitions take on screen.
type AnimationConfig struct {
	SlideSeconds float64 `yaml:"slide_seconds"` // One roundy rolling onto another
	ExitSeconds  float64 `yaml:"exit_seconds"`  // A roundy rolling off the board
	ToastSeconds float64 `yaml:"toast_seconds"` // Status message lifetime
	Easing       string  `yaml:"easing"`        // "linear", "out_quad", "in_out_quad" or "out_cubic"
}

// Easing names accepted in AnimationConfig.
var easings = map[string]bool{
	"linear":      true,
	"out_quad":    true,
	"in_out_quad": true,
	"out_cubic":   true,
}

// Validate checks that the board can be played.
func (b BoardConfig) Validate() error {
	if b.GridSize < 2 {
		return fmt.Errorf("config: grid_size %d is below 2", b.GridSize)
	}
	if b.TokenCount < 1 {
		return fmt.Errorf("config: token_count %d is below 1", b.TokenCount)
	}
	if b.TokenCount > b.GridSize*b.GridSize {
		return fmt.Errorf("config: token_count %d does not fit a %dx%d grid",
			b.TokenCount, b.GridSize, b.GridSize)
	}
	return nil
}

// Validate checks the board, every variant and the animation settings.
func (c FlatworldConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	for _, name := range c.VariantNames() {
		b, err := c.BoardFor(name)
		if err != nil {
			return err
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("variant %s: %w", name, err)
		}
	}

	a := c.Animation
	if a.SlideSeconds <= 0 || a.ExitSeconds <= 0 || a.ToastSeconds <= 0 {
		return fmt.Errorf("config: animation durations must be positive")
	}
	if !easings[a.Easing] {
		return fmt.Errorf("config: unknown easing %q", a.Easing)
	}
	return nil
}

// BoardFor resolves a variant to its board. The empty name and "classic"
// select the top-level board; zero sizes in a variant inherit from it.
func (c FlatworldConfig) BoardFor(variant string) (BoardConfig, error) {
	if variant == "" || variant == ClassicVariant {
		return c.Board, nil
	}

	v, ok := c.Variants[variant]
	if !ok {
		return BoardConfig{}, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	if v.GridSize == 0 {
		v.GridSize = c.Board.GridSize
	}
	if v.TokenCount == 0 {
		v.TokenCount = c.Board.TokenCount
	}
	return v, nil
}

// VariantNames returns the configured variant names in sorted order.
func (c FlatworldConfig) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
