package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/scene"
)

// TextImage draws t's content into an image the size of its local box, with
// the baseline where fonts.Measure puts it.
func TextImage(t *scene.TextElement, fill color.Color) (*image.RGBA, error) {
	face, err := fonts.Face(t.Font(), t.FontSize())
	if err != nil {
		return nil, err
	}
	m := t.Metrics()
	w := int(math.Ceil(m.Width))
	h := int(math.Ceil(m.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.Int26_6(m.Baseline * 64)},
	}
	d.DrawString(t.Content())
	return img, nil
}
