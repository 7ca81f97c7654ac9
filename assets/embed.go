package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Embedded background graphics for printcanvas. The default garment outline
// is drawn behind the print area.
//
//go:embed background/*.svg
var embeddedBackgrounds embed.FS

// DefaultBackground names the graphic used when nothing else is configured.
const DefaultBackground = "tshirt"

var (
	loadOnce sync.Once
	loadErr  error

	svgData = map[string][]byte{}
)

func loadBackgrounds() {
	entries, err := fs.ReadDir(embeddedBackgrounds, "background")
	if err != nil {
		loadErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".svg") {
			continue
		}
		data, err := embeddedBackgrounds.ReadFile(path.Join("background", name))
		if err != nil {
			loadErr = err
			return
		}
		svgData[strings.TrimSuffix(name, ".svg")] = data
	}
}

func ensureBackgrounds() error {
	loadOnce.Do(loadBackgrounds)
	return loadErr
}

// BackgroundSVG returns a copy of the named background's SVG source.
func BackgroundSVG(name string) ([]byte, error) {
	if err := ensureBackgrounds(); err != nil {
		return nil, err
	}
	data, ok := svgData[name]
	if !ok {
		return nil, fmt.Errorf("background %q not embedded", name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Backgrounds lists the embedded background names.
func Backgrounds() []string {
	if err := ensureBackgrounds(); err != nil {
		return nil
	}
	names := make([]string, 0, len(svgData))
	for name := range svgData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxRasterSide bounds either side of an SVG raster.
const MaxRasterSide = 8192

// ErrRasterSize is returned when an SVG would rasterise to no pixels or to
// more than MaxRasterSide on a side.
var ErrRasterSize = errors.New("svg has no usable size")

// RasterizeSVG renders SVG source at the given pixel size. A zero size uses
// the document's own viewBox dimensions.
func RasterizeSVG(data []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if w <= 0 || h <= 0 {
		vw, vh := icon.ViewBox.W, icon.ViewBox.H
		if !rasterSide(vw) || !rasterSide(vh) {
			return nil, fmt.Errorf("%w: viewBox %gx%g", ErrRasterSize, vw, vh)
		}
		w = int(vw + 0.5)
		h = int(vh + 0.5)
	}
	if w <= 0 || h <= 0 || w > MaxRasterSide || h > MaxRasterSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrRasterSize, w, h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

func rasterSide(v float64) bool {
	return !math.IsNaN(v) && v >= 0.5 && v <= MaxRasterSide
}

// SVGSize reports the viewBox dimensions of SVG source.
func SVGSize(data []byte) (w, h float64, err error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return 0, 0, fmt.Errorf("parse svg: %w", err)
	}
	return icon.ViewBox.W, icon.ViewBox.H, nil
}
