// Package render rasterises a scene onto an image and serialises it as an
// SVG document.
//
// Two raster flavours exist. The on-screen canvas carries decorations (the
// background graphic, the dashed print-area outline and the selection
// shadow). The export surface carries only the placeable elements on a
// transparent ground, so what is exported is exactly what the user placed.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/printcanvas/assets"
	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
	"github.com/example/printcanvas/internal/theme"
)

// RegionStrokeWidth is the outline width in canvas pixels.
const RegionStrokeWidth = 2.0

// Options selects what Canvas draws on top of the elements.
type Options struct {
	Theme *theme.Theme
	// Decorations adds the canvas fill, background graphic and region
	// outline.
	Decorations bool
	// Selected, when set, is drawn with a drop shadow.
	Selected *scene.Handle
}

// Renderer draws scenes. It caches the rasterised background graphic.
type Renderer struct {
	bgKey string
	bgImg *image.RGBA
}

// NewRenderer returns a Renderer with an empty cache.
func NewRenderer() *Renderer { return &Renderer{} }

// Canvas renders sc at canvas size.
func (r *Renderer) Canvas(sc *scene.Scene, opts Options) *image.RGBA {
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	size := sc.Canvas()
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(size.W)), int(math.Ceil(size.H))))

	if opts.Decorations {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Canvas), image.Point{}, draw.Src)
		if bg := sc.Background(); bg != nil {
			if img, err := r.background(bg); err != nil {
				log.Printf("render background %s: %v", bg.Name, err)
			} else {
				at := image.Pt(
					int(math.Round(bg.Center.X))-img.Bounds().Dx()/2,
					int(math.Round(bg.Center.Y))-img.Bounds().Dy()/2,
				)
				draw.Draw(dst, img.Bounds().Add(at), img, image.Point{}, draw.Over)
			}
		}
	}

	for _, el := range sc.Elements() {
		selected := opts.Selected != nil && opts.Selected.Kind == el.Handle().Kind
		if selected && opts.Decorations {
			layer, err := elementLayer(el, th, dst.Bounds())
			if err != nil {
				log.Printf("render %s: %v", el.Handle(), err)
				continue
			}
			DrawShadowed(dst, layer, DefaultShadowOptions(th.Selection))
			continue
		}
		if err := drawElement(dst, el, th); err != nil {
			log.Printf("render %s: %v", el.Handle(), err)
		}
	}

	if opts.Decorations {
		if region, ok := sc.Region(); ok {
			DashedRect(dst, region, th.RegionStroke, RegionStrokeWidth, RegionDash)
		}
	}
	return dst
}

// Surface renders the export surface of sc: elements only, transparent
// elsewhere.
func Surface(sc *scene.Scene) *image.RGBA {
	return NewRenderer().Canvas(sc, Options{})
}

func (r *Renderer) background(bg *scene.Background) (*image.RGBA, error) {
	key := fmt.Sprintf("%s@%g", bg.Name, bg.Scale)
	if r.bgImg != nil && r.bgKey == key {
		return r.bgImg, nil
	}
	w, h, err := assets.SVGSize(bg.SVG)
	if err != nil {
		return nil, err
	}
	img, err := assets.RasterizeSVG(bg.SVG, int(math.Round(w*bg.Scale)), int(math.Round(h*bg.Scale)))
	if err != nil {
		return nil, err
	}
	r.bgKey, r.bgImg = key, img
	return img, nil
}

// source returns the pixels of el in its local space and the transform
// from those pixel coordinates to the canvas.
func source(el scene.Element, th *theme.Theme) (image.Image, geom.Affine, error) {
	switch e := el.(type) {
	case *scene.TextElement:
		img, err := TextImage(e, th.TextFill)
		if err != nil {
			return nil, geom.Affine{}, err
		}
		return img, e.Transform(), nil
	case *scene.ImageElement:
		src := e.Source()
		o := src.Bounds().Min
		return src, e.Transform().Mul(geom.Translate(-float64(o.X), -float64(o.Y))), nil
	}
	return nil, geom.Affine{}, fmt.Errorf("unsupported element %T", el)
}

func drawElement(dst draw.Image, el scene.Element, th *theme.Theme) error {
	src, m, err := source(el, th)
	if err != nil {
		return err
	}
	xdraw.BiLinear.Transform(dst, m.Aff3(), src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// elementLayer draws el alone into an image covering its rotated box,
// clipped to clip.
func elementLayer(el scene.Element, th *theme.Theme, clip image.Rectangle) (*image.RGBA, error) {
	src, m, err := source(el, th)
	if err != nil {
		return nil, err
	}
	box := transformedBounds(m, src.Bounds()).Intersect(clip)
	layer := image.NewRGBA(box)
	xdraw.BiLinear.Transform(layer, m.Aff3(), src, src.Bounds(), xdraw.Over, nil)
	return layer, nil
}

func transformedBounds(m geom.Affine, r image.Rectangle) image.Rectangle {
	corners := []geom.Point{
		geom.Pt(float64(r.Min.X), float64(r.Min.Y)),
		geom.Pt(float64(r.Max.X), float64(r.Min.Y)),
		geom.Pt(float64(r.Max.X), float64(r.Max.Y)),
		geom.Pt(float64(r.Min.X), float64(r.Max.Y)),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.Apply(c)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX))-1, int(math.Floor(minY))-1, int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}
