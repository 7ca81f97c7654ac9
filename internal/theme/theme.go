package theme

import (
	"image/color"
)

// Theme defines the palette used by the editor window and the on-screen
// canvas. Exports never use theme colours except TextFill.
type Theme struct {
	Name string

	// Window
	Canvas     color.RGBA // Canvas fill behind the background graphic
	Foreground color.RGBA // General text

	// Scene
	TextFill     color.RGBA // Fill of the text element, exported as-is
	RegionStroke color.RGBA // Dashed print-area outline
	Selection    color.RGBA // Drop shadow tint of the selected element

	// Shortcut bar
	BarBackground color.RGBA
	BarText       color.RGBA

	// Transparent areas of the export preview
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:          "Default",
		Canvas:        color.RGBA{255, 255, 255, 255},
		Foreground:    color.RGBA{0, 0, 0, 255},
		TextFill:      color.RGBA{0, 0, 0, 255},
		RegionStroke:  color.RGBA{255, 0, 0, 255},
		Selection:     color.RGBA{0, 0, 0, 140},
		BarBackground: color.RGBA{220, 220, 220, 255},
		BarText:       color.RGBA{0, 0, 0, 255},
		CheckerLight:  color.RGBA{220, 220, 220, 255},
		CheckerDark:   color.RGBA{192, 192, 192, 255},
	}
}
