// Package export produces the print-area artifacts: a PNG cropped from the
// export surface and a standalone SVG whose origin is the print area's
// top-left corner.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/render"
	"github.com/example/printcanvas/internal/scene"
	"github.com/example/printcanvas/internal/theme"
)

const (
	RasterFilename = "config-image.png"
	VectorFilename = "config-image.svg"
)

// ErrNoRegion is returned when exporting a scene that has no print area,
// e.g. after teardown.
var ErrNoRegion = errors.New("no print area")

// Format selects an artifact.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Filename returns the artifact name for f.
func (f Format) Filename() string {
	if f == SVG {
		return VectorFilename
	}
	return RasterFilename
}

// ParseFormats reads a comma separated list such as "png,svg".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		switch f := Format(strings.ToLower(strings.TrimSpace(part))); f {
		case PNG, SVG:
			out = append(out, f)
		case "":
		default:
			return nil, fmt.Errorf("unknown export format %q", part)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return out, nil
}

func regionSize(region geom.Rect) (int, int) {
	return int(math.Round(region.W)), int(math.Round(region.H))
}

// Raster copies the pixels of surface that fall inside region into a new
// image of exactly the region's size, with the region's top-left at (0,0).
// Parts of the region outside the surface stay transparent.
func Raster(surface image.Image, region geom.Rect) (*image.RGBA, error) {
	if region.Empty() {
		return nil, fmt.Errorf("export raster: %w: empty region", ErrNoRegion)
	}
	w, h := regionSize(region)
	rect := image.Rect(0, 0, w, h).Add(image.Pt(int(math.Round(region.X)), int(math.Round(region.Y))))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	src := rect.Intersect(surface.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), surface, src.Min, draw.Src)
	}
	return out, nil
}

// RasterScene renders sc's export surface and crops it to the print area.
func RasterScene(sc *scene.Scene) (*image.RGBA, error) {
	region, ok := sc.Region()
	if !ok {
		return nil, fmt.Errorf("export raster: %w", ErrNoRegion)
	}
	return Raster(render.Surface(sc), region)
}

// VectorScene serialises sc and re-roots the document on the print area.
func VectorScene(sc *scene.Scene, th *theme.Theme) ([]byte, error) {
	region, ok := sc.Region()
	if !ok {
		return nil, fmt.Errorf("export vector: %w", ErrNoRegion)
	}
	doc, err := render.Document(sc, th)
	if err != nil {
		return nil, fmt.Errorf("export vector: %w", err)
	}
	return Vector(doc, region)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Save writes the requested artifacts of sc into dir and returns their
// paths. Both artifacts are built before anything is written, so a failed
// export leaves no partial output behind.
func Save(dir string, sc *scene.Scene, th *theme.Theme, formats ...Format) ([]string, error) {
	if len(formats) == 0 {
		formats = []Format{PNG, SVG}
	}
	data := make(map[Format][]byte, len(formats))
	for _, f := range formats {
		if _, done := data[f]; done {
			continue
		}
		switch f {
		case PNG:
			img, err := RasterScene(sc)
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := EncodePNG(&buf, img); err != nil {
				return nil, fmt.Errorf("encode png: %w", err)
			}
			data[f] = buf.Bytes()
		case SVG:
			doc, err := VectorScene(sc, th)
			if err != nil {
				return nil, err
			}
			data[f] = doc
		default:
			return nil, fmt.Errorf("unknown export format %q", f)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	var paths []string
	for _, f := range formats {
		b, ok := data[f]
		if !ok {
			continue
		}
		path := filepath.Join(dir, f.Filename())
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		delete(data, f)
		paths = append(paths, path)
	}
	return paths, nil
}
