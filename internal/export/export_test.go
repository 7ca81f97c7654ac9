package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/printcanvas/internal/eventloop"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
)

var printArea = geom.Rect{X: 275, Y: 175, W: 250, H: 250}

func TestRasterIsRegionSized(t *testing.T) {
	surface := image.NewRGBA(image.Rect(0, 0, 800, 600))
	surface.SetRGBA(275, 175, color.RGBA{R: 255, A: 255})
	surface.SetRGBA(524, 424, color.RGBA{B: 255, A: 255})
	surface.SetRGBA(274, 175, color.RGBA{G: 255, A: 255})

	out, err := Raster(surface, printArea)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 250, 250) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if out.RGBAAt(0, 0).R != 255 || out.RGBAAt(249, 249).B != 255 {
		t.Fatal("region corners not copied to the output origin")
	}
	for y := 0; y < 250; y++ {
		for x := 0; x < 250; x++ {
			if out.RGBAAt(x, y).G != 0 {
				t.Fatalf("pixel from outside the region leaked to (%d,%d)", x, y)
			}
		}
	}
}

func TestRasterSizeIndependentOfSurface(t *testing.T) {
	for _, size := range []image.Point{{800, 600}, {300, 200}, {1920, 1080}} {
		out, err := Raster(image.NewRGBA(image.Rectangle{Max: size}), printArea)
		if err != nil {
			t.Fatal(err)
		}
		if out.Bounds().Dx() != 250 || out.Bounds().Dy() != 250 {
			t.Fatalf("surface %v gave output %v", size, out.Bounds())
		}
	}
}

func TestRasterEmptyRegion(t *testing.T) {
	if _, err := Raster(image.NewRGBA(image.Rect(0, 0, 10, 10)), geom.Rect{}); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("expected ErrNoRegion, got %v", err)
	}
}

const sceneDoc = `<?xml version="1.0"?>
<svg width="800" height="600" viewBox="0 0 800 600" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:ex="urn:example">
<!-- comment -->
<defs><linearGradient id="lg"><stop offset="0"/></linearGradient></defs>
<g transform="translate(400 300) rotate(15)"><text x="0" y="0">A &amp; B</text></g>
<rect x="10" y="10" width="5" height="5"/>
<image x="0" y="0" width="1" height="1" xlink:href="data:image/png;base64,AAAA"/>
<circle cx="2000" cy="2000" r="3" ex:tag="far"/>
</svg>`

type node struct {
	XMLName   xml.Name
	Transform string `xml:"transform,attr"`
}

type root struct {
	XMLName  xml.Name
	Width    string `xml:"width,attr"`
	Height   string `xml:"height,attr"`
	ViewBox  string `xml:"viewBox,attr"`
	Children []node `xml:",any"`
}

func TestVectorReRootsDocument(t *testing.T) {
	out, err := Vector([]byte(sceneDoc), printArea)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`xmlns:xlink="http://www.w3.org/1999/xlink"`,
		`xmlns:ex="urn:example"`,
		`A &amp; B`,
		`xlink:href="data:image/png;base64,AAAA"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q\n%s", want, s)
		}
	}
	if strings.Contains(s, "comment") {
		t.Error("root-level comments should not be copied")
	}

	var doc root
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, s)
	}
	if doc.Width != "250" || doc.Height != "250" || doc.ViewBox != "0 0 250 250" {
		t.Fatalf("root = %+v", doc)
	}
	if len(doc.Children) != 5 {
		t.Fatalf("children = %d, want 5", len(doc.Children))
	}
	for _, c := range doc.Children {
		if c.XMLName.Local == "defs" {
			if c.Transform != "" {
				t.Errorf("defs must not be translated")
			}
			continue
		}
		if !strings.HasPrefix(c.Transform, "translate(-275 -175)") {
			t.Errorf("<%s> transform = %q", c.XMLName.Local, c.Transform)
		}
	}
	if got := doc.Children[1].Transform; got != "translate(-275 -175) translate(400 300) rotate(15)" {
		t.Errorf("existing transform not preserved: %q", got)
	}
}

func TestVectorRejectsBadInput(t *testing.T) {
	if _, err := Vector([]byte(`<html><body/></html>`), printArea); err == nil {
		t.Fatal("expected error for non-svg root")
	}
	if _, err := Vector([]byte(`<svg><g>`), printArea); err == nil {
		t.Fatal("expected error for truncated document")
	}
	if _, err := Vector([]byte(sceneDoc), geom.Rect{}); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("expected ErrNoRegion, got %v", err)
	}
}

func populated(t *testing.T) *scene.Scene {
	t.Helper()
	q := eventloop.New(4)
	sc := scene.New(scene.WithDispatcher(q))
	sc.InitializeRegionAndBackground(scene.CanvasSize)
	if err := sc.SetText("Hello", fonts.Arial, 14); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	sc.SetImage(buf.Bytes())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.RunUntil(ctx, func() bool { return !sc.Decoding() }); err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestSceneExports(t *testing.T) {
	sc := populated(t)
	img, err := RasterScene(sc)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 250 || img.Bounds().Dy() != 250 {
		t.Fatalf("raster bounds = %v", img.Bounds())
	}
	// the image is centred on the print area
	if img.RGBAAt(125, 125).A == 0 {
		t.Fatal("element missing from raster export")
	}
	if img.RGBAAt(1, 1).A != 0 {
		t.Fatal("decorations leaked into raster export")
	}

	doc, err := VectorScene(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	var r root
	if err := xml.Unmarshal(doc, &r); err != nil {
		t.Fatal(err)
	}
	if r.ViewBox != "0 0 250 250" || len(r.Children) != 2 {
		t.Fatalf("vector export = %+v", r)
	}
}

func TestExportsFailAfterTeardown(t *testing.T) {
	sc := populated(t)
	sc.Teardown()
	if _, err := RasterScene(sc); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("raster: expected ErrNoRegion, got %v", err)
	}
	if _, err := VectorScene(sc, nil); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("vector: expected ErrNoRegion, got %v", err)
	}
	dir := t.TempDir()
	if _, err := Save(dir, sc, nil, PNG, SVG); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("save: expected ErrNoRegion, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("failed export left %d files behind", len(entries))
	}
}

func TestSaveWritesArtifacts(t *testing.T) {
	sc := populated(t)
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Save(dir, sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "config-image.png" || filepath.Base(paths[1]) != "config-image.svg" {
		t.Fatalf("paths = %v", paths)
	}
	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 250 || cfg.Height != 250 {
		t.Fatalf("png is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats("PNG, svg")
	if err != nil || len(got) != 2 || got[0] != PNG || got[1] != SVG {
		t.Fatalf("ParseFormats = %v, %v", got, err)
	}
	if _, err := ParseFormats("gif"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseFormats(" , "); err == nil {
		t.Fatal("expected error for empty list")
	}
}
