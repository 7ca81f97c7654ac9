package editor

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/render"
	"github.com/example/printcanvas/internal/theme"
)

const bottomHeight = 24

type action string

const (
	actionPNG     action = "png"
	actionSVG     action = "svg"
	actionCopy    action = "copy"
	actionCopySVG action = "copysvg"
	actionPaste   action = "paste"
	actionPreview action = "preview"
	actionQuit    action = "quit"
)

// keyActions maps lower-case shortcut runes to actions.
var keyActions = map[rune]action{
	'p': actionPNG,
	's': actionSVG,
	'c': actionCopy,
	'x': actionCopySVG,
	'v': actionPaste,
	'e': actionPreview,
	'q': actionQuit,
}

type shortcut struct {
	label  string
	action action
	rect   image.Rectangle
}

var shortcutLabels = []shortcut{
	{label: "P:png", action: actionPNG},
	{label: "S:svg", action: actionSVG},
	{label: "C:copy", action: actionCopy},
	{label: "X:copy svg", action: actionCopySVG},
	{label: "V:paste", action: actionPaste},
	{label: "E:preview", action: actionPreview},
	{label: "Q:quit", action: actionQuit},
}

// layoutShortcuts places the shortcut buttons left to right along the
// bottom bar of a window of the given size.
func layoutShortcuts(size image.Point) []shortcut {
	out := make([]shortcut, len(shortcutLabels))
	copy(out, shortcutLabels)
	x := 4
	y := size.Y - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range out {
		w := meas.MeasureString(out[i].label).Ceil()
		out[i].rect = image.Rect(x-2, y-14, x+w+2, y+4)
		x = out[i].rect.Max.X + 8
	}
	return out
}

func shortcutAt(shortcuts []shortcut, p image.Point) int {
	for i, s := range shortcuts {
		if p.In(s.rect) {
			return i
		}
	}
	return -1
}

func (s *shortcut) draw(dst *image.RGBA, th *theme.Theme, hover bool) {
	bg := th.BarBackground
	if hover {
		bg = shade(bg, 20)
	}
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, s.rect, th.BarText)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.BarText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func shade(c color.RGBA, by uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < by {
			return 0
		}
		return v - by
	}
	return color.RGBA{sub(c.R), sub(c.G), sub(c.B), c.A}
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := &image.Uniform{c}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// compose draws one full window frame into dst: the decorated canvas at the
// origin, the optional export preview, the shortcut bar and any message.
func (e *Editor) compose(dst *image.RGBA) {
	size := dst.Bounds().Size()
	th := e.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.BarBackground}, image.Point{}, draw.Src)

	opts := render.Options{Theme: th, Decorations: true}
	if h, ok := e.ctrl.Selected(); ok {
		opts.Selected = &h
	}
	canvas := e.renderer.Canvas(e.scene, opts)
	draw.Draw(dst, canvas.Bounds(), canvas, image.Point{}, draw.Src)

	if e.preview {
		e.drawPreview(dst)
	}

	e.shortcuts = layoutShortcuts(size)
	for i := range e.shortcuts {
		e.shortcuts[i].draw(dst, th, i == e.hover)
	}
	if status := e.Status(); status != "" {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.BarText), Face: basicfont.Face7x13}
		w := d.MeasureString(status).Ceil()
		d.Dot = fixed.P(size.X-w-6, size.Y-bottomHeight+16)
		d.DrawString(status)
	}

	if e.message != "" && time.Now().Before(e.messageEnd) {
		drawMessage(dst, e.message, th, size.Y-bottomHeight)
	}
}

// drawPreview shows the raster export in the top-right corner over a
// checkerboard so transparent areas are visible.
func (e *Editor) drawPreview(dst *image.RGBA) {
	img, err := export.RasterScene(e.scene)
	if err != nil {
		return
	}
	b := img.Bounds()
	at := image.Pt(dst.Bounds().Dx()-b.Dx()-8, 8)
	r := b.Add(at)
	checker(dst, r, e.theme.CheckerLight, e.theme.CheckerDark)
	draw.Draw(dst, r, img, b.Min, draw.Over)
	drawRect(dst, r.Inset(-1), e.theme.Foreground)
}

func checker(dst *image.RGBA, r image.Rectangle, light, dark color.RGBA) {
	const cell = 8
	for y := r.Min.Y; y < r.Max.Y; y += cell {
		for x := r.Min.X; x < r.Max.X; x += cell {
			c := light
			if ((x-r.Min.X)/cell+(y-r.Min.Y)/cell)%2 == 1 {
				c = dark
			}
			draw.Draw(dst, image.Rect(x, y, x+cell, y+cell).Intersect(r), &image.Uniform{c}, image.Point{}, draw.Src)
		}
	}
}

func drawMessage(dst *image.RGBA, msg string, th *theme.Theme, height int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
	w := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := (dst.Bounds().Dx() - w) / 2
	py := (height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	bg := color.NRGBA{th.Canvas.R, th.Canvas.G, th.Canvas.B, 230}
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, rect, th.Foreground)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
