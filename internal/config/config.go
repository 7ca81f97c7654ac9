package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	// Font and FontSize seed the text element when a command is not given
	// them explicitly.
	Font     fonts.Family
	FontSize float64
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:    "", // empty falls back to env or the built-in theme
		Font:     fonts.DefaultFamily,
		FontSize: fonts.DefaultSize,
		Themes:   make(map[string]*theme.Theme),
	}
}

// ThemeLoader returns a theme loader that also knows the config's inline
// themes.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Inline = c.Themes
	return l
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	if c.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", c.Font)
	}
	if c.FontSize > 0 {
		fmt.Fprintf(&sb, "font_size = %g\n", c.FontSize)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
