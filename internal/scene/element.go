package scene

import (
	"image"

	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
)

// Element is the read-only view of a placeable element shared by the
// controller, the renderer and the exporters.
type Element interface {
	Handle() Handle
	Center() geom.Point
	// Rotation is in degrees within [0, 360).
	Rotation() float64
	// Bounds is the unrotated box centred on Center, recomputed on every
	// call. It is what the containment test sees.
	Bounds() geom.Rect
	// LocalSize is the element's box before scale and rotation.
	LocalSize() geom.Size
	// Transform maps the local box (origin top-left) onto the canvas.
	Transform() geom.Affine
	order() uint64
}

// TextElement is the single line of user text on the canvas.
type TextElement struct {
	handle   Handle
	content  string
	font     fonts.Family
	fontSize float64
	position geom.Point
	rotation float64
	z        uint64
}

func (t *TextElement) Handle() Handle        { return t.handle }
func (t *TextElement) Content() string       { return t.content }
func (t *TextElement) Font() fonts.Family    { return t.font }
func (t *TextElement) FontSize() float64     { return t.fontSize }
func (t *TextElement) Center() geom.Point    { return t.position }
func (t *TextElement) Rotation() float64     { return t.rotation }
func (t *TextElement) order() uint64         { return t.z }
func (t *TextElement) Metrics() fonts.Metrics { return t.metrics() }

func (t *TextElement) metrics() fonts.Metrics {
	m, err := fonts.Measure(t.content, t.font, t.fontSize)
	if err != nil {
		return fonts.Metrics{}
	}
	return m
}

func (t *TextElement) LocalSize() geom.Size {
	m := t.metrics()
	return geom.Sz(m.Width, m.Height)
}

func (t *TextElement) Bounds() geom.Rect {
	return geom.CenteredAt(t.position, t.LocalSize())
}

func (t *TextElement) Transform() geom.Affine {
	return geom.Placement(t.position, t.LocalSize(), t.rotation, 1)
}

// ImageElement is the uploaded picture placed on the canvas.
type ImageElement struct {
	handle   Handle
	source   image.Image
	natural  geom.Size
	scale    float64
	position geom.Point
	rotation float64
	z        uint64
}

func (i *ImageElement) Handle() Handle       { return i.handle }
func (i *ImageElement) Source() image.Image  { return i.source }
func (i *ImageElement) Natural() geom.Size   { return i.natural }
func (i *ImageElement) Scale() float64       { return i.scale }
func (i *ImageElement) Center() geom.Point   { return i.position }
func (i *ImageElement) Rotation() float64    { return i.rotation }
func (i *ImageElement) LocalSize() geom.Size { return i.natural }
func (i *ImageElement) order() uint64        { return i.z }

func (i *ImageElement) Bounds() geom.Rect {
	return geom.CenteredAt(i.position, i.natural.Scale(i.scale))
}

func (i *ImageElement) Transform() geom.Affine {
	return geom.Placement(i.position, i.natural, i.rotation, i.scale)
}

// hit reports whether p falls on the element's rotated box.
func hit(e Element, p geom.Point) bool {
	local := e.Transform().Invert().Apply(p)
	s := e.LocalSize()
	return local.X >= 0 && local.X <= s.W && local.Y >= 0 && local.Y <= s.H
}
