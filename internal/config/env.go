package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/printcanvas/internal/fonts"
)

// Env holds the environment overrides. Unset variables leave the file
// configuration alone.
type Env struct {
	Theme     string  `envconfig:"PRINTCANVAS_THEME"`
	ExportDir string  `envconfig:"PRINTCANVAS_EXPORT_DIR"`
	Font      string  `envconfig:"PRINTCANVAS_FONT"`
	FontSize  float64 `envconfig:"PRINTCANVAS_FONT_SIZE"`
}

// LoadEnv reads the PRINTCANVAS_* variables.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// Apply copies every set override onto cfg.
func (e Env) Apply(cfg *Config) error {
	if e.Theme != "" {
		cfg.Theme = e.Theme
	}
	if e.ExportDir != "" {
		cfg.ExportDir = e.ExportDir
	}
	if e.Font != "" {
		f, err := fonts.Parse(e.Font)
		if err != nil {
			return fmt.Errorf("PRINTCANVAS_FONT: %w", err)
		}
		cfg.Font = f
	}
	if e.FontSize > 0 {
		cfg.FontSize = e.FontSize
	}
	return nil
}
