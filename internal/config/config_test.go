package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/printcanvas/internal/fonts"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/prints
font = "courier new"
font_size = 18.5

[notify]
export = true
copy = false

[theme.my_custom_theme]
Canvas = #111111
RegionStroke = #00FF00
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ExportDir != "/tmp/prints" {
		t.Errorf("Expected export_dir '/tmp/prints', got '%s'", cfg.ExportDir)
	}
	if cfg.Font != fonts.CourierNew || cfg.FontSize != 18.5 {
		t.Errorf("font = %q %v", cfg.Font, cfg.FontSize)
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Canvas.R != 0x11 || th.RegionStroke.G != 0xFF {
		t.Errorf("Unexpected theme colours: %+v", th)
	}
}

func TestParseErrors(t *testing.T) {
	for name, input := range map[string]string{
		"font":   "font = Papyrus",
		"size":   "font_size = -3",
		"notify": "[notify]\nexport = maybe",
		"colour": "[theme.x]\nCanvas = blue",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/prints
font = Lobster

[notify]
export = true
copy = true

[theme.custom]
Name = custom
Canvas = #000000
TextFill = #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Font != cfg2.Font || cfg.FontSize != cfg2.FontSize {
		t.Errorf("font mismatch: %q/%v vs %q/%v", cfg.Font, cfg.FontSize, cfg2.Font, cfg2.FontSize)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRINTCANVAS_THEME", "dark")
	t.Setenv("PRINTCANVAS_EXPORT_DIR", "/srv/out")
	t.Setenv("PRINTCANVAS_FONT", "georgia")
	t.Setenv("PRINTCANVAS_FONT_SIZE", "30")

	cfg := New()
	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Apply(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" || cfg.ExportDir != "/srv/out" || cfg.Font != fonts.Georgia || cfg.FontSize != 30 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestEnvBadFont(t *testing.T) {
	t.Setenv("PRINTCANVAS_FONT", "Comic Sans")
	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Apply(New()); err == nil {
		t.Fatal("expected error for unknown font")
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("export_dir = /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRINTCANVAS_EXPORT_DIR", "/from/env")

	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExportDir != "/from/env" {
		t.Fatalf("env should win over the file, got %q", cfg.ExportDir)
	}

	l.SkipEnv = true
	cfg, err = l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExportDir != "/from/file" {
		t.Fatalf("file value lost: %q", cfg.ExportDir)
	}
}
