package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/example/printcanvas/internal/scene"
	"github.com/example/printcanvas/internal/theme"
)

// Document serialises the placeable elements of sc as a canvas-sized SVG
// document. Each element is one top-level <g> whose transform places its
// local box on the canvas. Decorations are not part of the document.
func Document(sc *scene.Scene, th *theme.Theme) ([]byte, error) {
	if th == nil {
		th = theme.Default()
	}
	size := sc.Canvas()
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(w, h, 0, 0, w, h)
	for _, el := range sc.Elements() {
		switch e := el.(type) {
		case *scene.TextElement:
			writeText(canvas, e, th.TextFill)
		case *scene.ImageElement:
			if err := writeImage(canvas, e); err != nil {
				return nil, fmt.Errorf("serialise %s: %w", e.Handle(), err)
			}
		}
	}
	canvas.End()
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeText(canvas *svg.SVG, t *scene.TextElement, fill color.RGBA) {
	m := t.Metrics()
	c := t.Center()
	canvas.Gtransform(fmt.Sprintf("translate(%s %s) rotate(%s) translate(%s %s)",
		num(c.X), num(c.Y), num(t.Rotation()), num(-m.Width/2), num(m.Baseline-m.Height/2)))
	canvas.Text(0, 0, t.Content(),
		fmt.Sprintf(`font-family="%s"`, t.Font()),
		fmt.Sprintf(`font-size="%s"`, num(t.FontSize())),
		fmt.Sprintf(`fill="%s"`, theme.Hex(fill)),
		`xml:space="preserve"`)
	canvas.Gend()
}

func writeImage(canvas *svg.SVG, i *scene.ImageElement) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, i.Source()); err != nil {
		return err
	}
	n := i.Natural()
	c := i.Center()
	canvas.Gtransform(fmt.Sprintf("translate(%s %s) rotate(%s) scale(%s) translate(%s %s)",
		num(c.X), num(c.Y), num(i.Rotation()), num(i.Scale()), num(-n.W/2), num(-n.H/2)))
	canvas.Image(0, 0, int(n.W), int(n.H), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))
	canvas.Gend()
	return nil
}
