package assets

import (
	"errors"
	"testing"
)

func TestDefaultBackgroundEmbedded(t *testing.T) {
	data, err := BackgroundSVG(DefaultBackground)
	if err != nil {
		t.Fatalf("BackgroundSVG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty svg")
	}
	found := false
	for _, name := range Backgrounds() {
		if name == DefaultBackground {
			found = true
		}
	}
	if !found {
		t.Fatalf("Backgrounds() = %v, missing %q", Backgrounds(), DefaultBackground)
	}
}

func TestRasterizeSVGUsesViewBox(t *testing.T) {
	data, err := BackgroundSVG(DefaultBackground)
	if err != nil {
		t.Fatal(err)
	}
	img, err := RasterizeSVG(data, 0, 0)
	if err != nil {
		t.Fatalf("RasterizeSVG: %v", err)
	}
	if img.Bounds().Dx() != 1500 || img.Bounds().Dy() != 1500 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	// centre of the shirt body is filled
	if img.RGBAAt(750, 900).A == 0 {
		t.Fatal("expected painted pixel inside the garment")
	}
	// top-left corner is outside the outline
	if img.RGBAAt(5, 5).A != 0 {
		t.Fatal("expected transparent corner")
	}
}

func TestRasterizeSVGRejectsGarbage(t *testing.T) {
	if _, err := RasterizeSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><g>`), 10, 10); err == nil {
		t.Fatal("expected error for invalid svg")
	}
}

func TestRasterizeSVGBoundsSize(t *testing.T) {
	tests := []struct {
		name, viewBox string
	}{
		{"huge", "0 0 1e10 1e10"},
		{"wide", "0 0 100000 10"},
		{"empty", "0 0 0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="` + tt.viewBox + `"><rect width="1" height="1"/></svg>`
			if _, err := RasterizeSVG([]byte(doc), 0, 0); !errors.Is(err, ErrRasterSize) {
				t.Fatalf("expected ErrRasterSize, got %v", err)
			}
		})
	}
	if _, err := RasterizeSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 4"/>`), MaxRasterSide+1, 4); !errors.Is(err, ErrRasterSize) {
		t.Fatalf("explicit oversize: %v", err)
	}
}
