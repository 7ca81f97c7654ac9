// Package scene owns the canvas model: the fixed print area, the decorative
// background and the two replaceable element slots (one text, one image)
// together with their transform state.
//
// A Scene is not safe for concurrent use. All calls, including the decode
// completions it posts to its dispatcher, must run on one event loop.
package scene

import (
	"fmt"
	"log"
	"sort"

	"github.com/example/printcanvas/assets"
	"github.com/example/printcanvas/internal/eventloop"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
)

const (
	CanvasWidth     = 800
	CanvasHeight    = 600
	BackgroundScale = 0.4
)

// RegionSize is the fixed size of the print area, independent of the canvas.
var RegionSize = geom.Sz(250, 250)

// CanvasSize is the default drawing area.
var CanvasSize = geom.Sz(CanvasWidth, CanvasHeight)

// Background is the locked decorative graphic drawn behind everything. It
// is never selected, moved or exported.
type Background struct {
	Name   string
	SVG    []byte
	Center geom.Point
	Scale  float64
}

// DecodeResult reports the outcome of a SetImage request once it has been
// resolved on the event loop. Superseded requests are reported with
// Superseded set and no element.
type DecodeResult struct {
	Seq        uint64
	Handle     Handle
	Err        error
	Superseded bool
}

// Scene holds the canvas state.
type Scene struct {
	canvas     geom.Size
	region     *geom.Rect
	background *Background

	textSlot  *TextElement
	imageSlot *ImageElement

	nextZ uint64

	seq     uint64
	pending uint64

	dispatcher eventloop.Dispatcher
	decoder    Decoder
	listener   func(DecodeResult)
	bgName     string
	bgSVG      []byte
}

// Option configures a Scene.
type Option func(*Scene)

// WithDispatcher sets the event loop that decode completions are posted to.
// Without one, SetImage decodes synchronously.
func WithDispatcher(d eventloop.Dispatcher) Option { return func(s *Scene) { s.dispatcher = d } }

// WithDecoder replaces the image decoder.
func WithDecoder(d Decoder) Option { return func(s *Scene) { s.decoder = d } }

// WithDecodeListener registers a callback run on the event loop whenever a
// SetImage request resolves.
func WithDecodeListener(fn func(DecodeResult)) Option {
	return func(s *Scene) { s.listener = fn }
}

// WithBackground overrides the background graphic source.
func WithBackground(name string, svg []byte) Option {
	return func(s *Scene) {
		s.bgName = name
		s.bgSVG = svg
	}
}

// New creates an empty scene. Call InitializeRegionAndBackground before use.
func New(opts ...Option) *Scene {
	s := &Scene{}
	for _, o := range opts {
		o(s)
	}
	if s.decoder == nil {
		s.decoder = DefaultDecoder()
	}
	return s
}

// InitializeRegionAndBackground places the print area and the background
// graphic centred on a canvas of the given size.
func (s *Scene) InitializeRegionAndBackground(canvas geom.Size) {
	s.canvas = canvas
	center := geom.Pt(canvas.W/2, canvas.H/2)
	region := geom.CenteredAt(center, RegionSize)
	s.region = &region

	name, data := s.bgName, s.bgSVG
	if data == nil {
		if name == "" {
			name = assets.DefaultBackground
		}
		var err error
		data, err = assets.BackgroundSVG(name)
		if err != nil {
			log.Printf("background %s: %v", name, err)
			s.background = nil
			return
		}
	}
	s.background = &Background{Name: name, SVG: data, Center: center, Scale: BackgroundScale}
}

// Canvas returns the canvas size given at initialisation.
func (s *Scene) Canvas() geom.Size { return s.canvas }

// Region returns the print area, or false once the scene is torn down.
func (s *Scene) Region() (geom.Rect, bool) {
	if s.region == nil {
		return geom.Rect{}, false
	}
	return *s.region, true
}

// Background returns the decorative graphic, if any.
func (s *Scene) Background() *Background { return s.background }

func (s *Scene) anchor() geom.Point {
	if s.region != nil {
		return s.region.Center()
	}
	return geom.Pt(s.canvas.W/2, s.canvas.H/2)
}

func (s *Scene) z() uint64 {
	s.nextZ++
	return s.nextZ
}

// SetText replaces the text element. The new element is unrotated and
// centred on the print area. An empty font selects the default family and a
// non-positive size the default size.
func (s *Scene) SetText(content string, font fonts.Family, size float64) error {
	if font == "" {
		font = fonts.DefaultFamily
	}
	if !font.Valid() {
		return fmt.Errorf("set text: %w: %q", fonts.ErrUnknownFamily, string(font))
	}
	if size <= 0 {
		size = fonts.DefaultSize
	}
	s.replaceText(&TextElement{
		handle:   newHandle(KindText),
		content:  content,
		font:     font,
		fontSize: size,
		position: s.anchor(),
		z:        s.z(),
	})
	return nil
}

// replaceText is the only writer of the text slot.
func (s *Scene) replaceText(t *TextElement) { s.textSlot = t }

// replaceImage is the only writer of the image slot.
func (s *Scene) replaceImage(i *ImageElement) { s.imageSlot = i }

// Text returns the current text element or nil.
func (s *Scene) Text() *TextElement { return s.textSlot }

// Image returns the current image element or nil. It stays nil while a
// decode is in flight.
func (s *Scene) Image() *ImageElement { return s.imageSlot }

// Element returns the element occupying kind's slot.
func (s *Scene) Element(k Kind) Element {
	switch k {
	case KindText:
		if s.textSlot != nil {
			return s.textSlot
		}
	case KindImage:
		if s.imageSlot != nil {
			return s.imageSlot
		}
	}
	return nil
}

// Elements returns the live elements bottom to top.
func (s *Scene) Elements() []Element {
	var out []Element
	if s.textSlot != nil {
		out = append(out, s.textSlot)
	}
	if s.imageSlot != nil {
		out = append(out, s.imageSlot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order() < out[j].order() })
	return out
}

// ElementAt returns the top-most element whose rotated box contains p.
func (s *Scene) ElementAt(p geom.Point) Element {
	els := s.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		if hit(els[i], p) {
			return els[i]
		}
	}
	return nil
}

// Move sets the center of kind's element. It performs no containment
// check; callers gate moves themselves.
func (s *Scene) Move(k Kind, p geom.Point) bool {
	switch k {
	case KindText:
		if s.textSlot == nil {
			return false
		}
		s.textSlot.position = p
	case KindImage:
		if s.imageSlot == nil {
			return false
		}
		s.imageSlot.position = p
	default:
		return false
	}
	return true
}

// Rotate turns kind's element by degrees about the center of its bounds.
func (s *Scene) Rotate(k Kind, degrees float64) bool {
	e := s.Element(k)
	if e == nil {
		return false
	}
	pivot := e.Bounds().Center()
	switch el := e.(type) {
	case *TextElement:
		el.position = geom.Rotate(el.position, degrees, pivot)
		el.rotation = geom.NormalizeDegrees(el.rotation + degrees)
	case *ImageElement:
		el.position = geom.Rotate(el.position, degrees, pivot)
		el.rotation = geom.NormalizeDegrees(el.rotation + degrees)
	}
	return true
}

// Grow enlarges kind's element by one scale step: the font size for text,
// the uniform scale for images.
func (s *Scene) Grow(k Kind) bool {
	switch k {
	case KindText:
		if s.textSlot == nil {
			return false
		}
		s.textSlot.fontSize *= geom.ScaleStep
	case KindImage:
		if s.imageSlot == nil {
			return false
		}
		s.imageSlot.scale *= geom.ScaleStep
	default:
		return false
	}
	return true
}

// Shrink divides kind's size by one scale step.
func (s *Scene) Shrink(k Kind) bool {
	switch k {
	case KindText:
		if s.textSlot == nil {
			return false
		}
		s.textSlot.fontSize /= geom.ScaleStep
	case KindImage:
		if s.imageSlot == nil {
			return false
		}
		s.imageSlot.scale /= geom.ScaleStep
	default:
		return false
	}
	return true
}

// Teardown removes the elements, the region and the background, and
// discards any in-flight decode. Calling it again is a no-op.
func (s *Scene) Teardown() {
	s.replaceText(nil)
	s.replaceImage(nil)
	s.region = nil
	s.background = nil
	if s.pending != 0 {
		s.seq++
		s.pending = 0
	}
}
