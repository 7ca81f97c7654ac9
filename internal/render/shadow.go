package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the soft shadow drawn under the selected element.
type ShadowOptions struct {
	Radius int
	Offset image.Point
	// Tint is the shadow colour; its alpha is the peak opacity.
	Tint color.RGBA
}

// ShadowResult captures the output of Shadow.
type ShadowResult struct {
	// Image holds the layer composited over its blurred shadow, with a zero
	// origin.
	Image *image.RGBA
	// Origin is where Image's top-left belongs in the layer's coordinate
	// space.
	Origin image.Point
}

// DefaultShadowOptions returns the selection shadow used by the editor.
func DefaultShadowOptions(tint color.RGBA) ShadowOptions {
	return ShadowOptions{Radius: 6, Offset: image.Pt(4, 4), Tint: tint}
}

// Shadow blurs the alpha of layer, tints it and places layer on top. The
// layer may have a non-zero origin; the result reports where it goes.
func Shadow(layer *image.RGBA, opts ShadowOptions) ShadowResult {
	if layer == nil {
		return ShadowResult{}
	}
	src := layer.Bounds()
	if src.Empty() || opts.Tint.A == 0 {
		return ShadowResult{Image: layer, Origin: src.Min}
	}
	radius := max(opts.Radius, 0)

	padded := src.Inset(-radius)
	shadowAt := padded.Add(opts.Offset)
	total := src.Union(shadowAt)

	mask := image.NewAlpha(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := layer.RGBAAt(x, y).A; a != 0 {
				mask.SetAlpha(x-padded.Min.X, y-padded.Min.Y, color.Alpha{A: a})
			}
		}
	}
	if radius > 0 {
		b := mask.Bounds()
		boxBlur(mask.Pix, b.Dx(), b.Dy(), 1, mask.Stride, radius)
		boxBlur(mask.Pix, b.Dy(), b.Dx(), mask.Stride, 1, radius)
	}

	out := image.NewRGBA(image.Rect(0, 0, total.Dx(), total.Dy()))
	draw.DrawMask(out, shadowAt.Sub(total.Min), image.NewUniform(opts.Tint), image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(out, src.Sub(total.Min), layer, src.Min, draw.Over)
	return ShadowResult{Image: out, Origin: total.Min}
}

// DrawShadowed composites layer and its shadow onto dst.
func DrawShadowed(dst draw.Image, layer *image.RGBA, opts ShadowOptions) {
	res := Shadow(layer, opts)
	if res.Image == nil {
		return
	}
	r := res.Image.Bounds().Add(res.Origin)
	draw.Draw(dst, r, res.Image, image.Point{}, draw.Over)
}

// boxBlur runs a running-sum box blur along one axis of an 8-bit plane.
// Each of the lines lines holds n samples step bytes apart; consecutive
// lines start next bytes apart.
func boxBlur(pix []uint8, n, lines, step, next, radius int) {
	prefix := make([]int, n+1)
	for l := 0; l < lines; l++ {
		base := l * next
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(pix[base+i*step])
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			pix[base+i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
}
