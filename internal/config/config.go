// Package config resolves mkpalette defaults from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/mkpalette/internal/ctable"
	"github.com/jmylchreest/mkpalette/internal/highlight"
)

// Environment variables read by WithEnvConfig.
const (
	EnvColor     = "MKPALETTE_COLOR"
	EnvStyle     = "MKPALETTE_STYLE"
	EnvDimension = "MKPALETTE_DIMENSION"
	EnvNoColor   = "NO_COLOR"
)

// ColorMode controls syntax highlighting of generated output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// String implements pflag.Value.
func (m *ColorMode) String() string { return string(*m) }

// Set implements pflag.Value.
func (m *ColorMode) Set(s string) error {
	switch v := ColorMode(strings.ToLower(s)); v {
	case ColorAuto, ColorAlways, ColorNever:
		*m = v
		return nil
	}
	return fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", s)
}

// Type implements pflag.Value.
func (m *ColorMode) Type() string { return "mode" }

// Dimension wraps ctable.Dimension as a flag value.
type Dimension struct {
	ctable.Dimension
}

// String implements pflag.Value.
func (d *Dimension) String() string { return d.Dimension.String() }

// Set implements pflag.Value.
func (d *Dimension) Set(s string) error {
	v, err := ctable.ParseDimension(s)
	if err != nil {
		return err
	}
	d.Dimension = v
	return nil
}

// Type implements pflag.Value.
func (d *Dimension) Type() string { return "shape" }

var (
	_ pflag.Value = (*ColorMode)(nil)
	_ pflag.Value = (*Dimension)(nil)
)

// Config holds rendering defaults.
type Config struct {
	Color     ColorMode
	Style     string
	Dimension Dimension
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:     ColorAuto,
		Style:     highlight.DefaultStyle,
		Dimension: Dimension{ctable.DimensionChannels},
	}
}

// Builder assembles a Config.
type Builder struct {
	config Config
	useEnv bool
	getenv func(string) string
}

// NewBuilder creates a new Config builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		getenv: os.Getenv,
	}
}

// WithEnvConfig loads overrides from MKPALETTE_* variables and NO_COLOR.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLookup replaces os.Getenv (useful for testing).
func (b *Builder) WithLookup(getenv func(string) string) *Builder {
	b.getenv = getenv
	return b
}

// Build constructs the Config. Invalid environment values are returned as
// warnings and otherwise ignored.
func (b *Builder) Build() (Config, []string) {
	config := b.config
	if !b.useEnv {
		return config, nil
	}

	var warnings []string
	if v := b.getenv(EnvColor); v != "" {
		if err := config.Color.Set(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", EnvColor, err))
		}
	}
	if v := b.getenv(EnvStyle); v != "" {
		if highlight.StyleExists(v) {
			config.Style = strings.ToLower(v)
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: unknown style %q", EnvStyle, v))
		}
	}
	if v := b.getenv(EnvDimension); v != "" {
		if err := config.Dimension.Set(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", EnvDimension, err))
		}
	}
	// https://no-color.org: any non-empty value disables colour.
	if b.getenv(EnvNoColor) != "" {
		config.Color = ColorNever
	}

	return config, warnings
}
