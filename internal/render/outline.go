package render

import (
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/example/printcanvas/internal/geom"
)

// RegionDash is the on-screen dash pattern of the print-area outline.
var RegionDash = []float64{10, 4}

// DashedRect strokes r onto dst with the given colour, width and dash
// pattern. A nil pattern draws a solid line.
func DashedRect(dst draw.Image, r geom.Rect, c color.Color, width float64, dashes []float64) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	d := rasterx.NewDasher(w, h, scanner)
	d.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64), rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, dashes, 0)
	d.SetColor(c)
	d.Start(rasterx.ToFixedP(r.Left(), r.Top()))
	d.Line(rasterx.ToFixedP(r.Right(), r.Top()))
	d.Line(rasterx.ToFixedP(r.Right(), r.Bottom()))
	d.Line(rasterx.ToFixedP(r.Left(), r.Bottom()))
	d.Stop(true)
	d.Draw()
}
