package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/printcanvas/internal/fonts"
)

// inputFlags are the element inputs shared by edit and export.
type inputFlags struct {
	text  string
	font  string
	size  float64
	image string
}

func (in *inputFlags) register(fs *flag.FlagSet, r *root) {
	font, size := fonts.DefaultFamily, fonts.DefaultSize
	if r != nil && r.config != nil {
		font, size = r.config.Font, r.config.FontSize
	}
	fs.StringVar(&in.text, "text", "", "text element content")
	fs.StringVar(&in.font, "font", string(font), "text font family (see the fonts command)")
	fs.Float64Var(&in.size, "size", size, "text font size in pixels")
	fs.StringVar(&in.image, "image", "", "image file to place (png, jpeg, gif, bmp, tiff, webp or svg)")
}

func (in *inputFlags) family() (fonts.Family, error) {
	f, err := fonts.Parse(in.font)
	if err != nil {
		return "", fmt.Errorf("-font: %w", err)
	}
	return f, nil
}

func (in *inputFlags) imageData() ([]byte, error) {
	if in.image == "" {
		return nil, nil
	}
	data, err := os.ReadFile(in.image)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}
