// Package fonts maps the font families offered to users onto faces that can
// be measured and rasterised without system fonts. SVG output keeps the
// requested family name; raster output uses the bundled Go fonts.
package fonts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
)

// Family is one of the font families the text tab offers.
type Family string

const (
	Arial          Family = "Arial"
	Verdana        Family = "Verdana"
	Tahoma         Family = "Tahoma"
	CourierNew     Family = "Courier New"
	Georgia        Family = "Georgia"
	TimesNewRoman  Family = "Times New Roman"
	Roboto         Family = "Roboto"
	Montserrat     Family = "Montserrat"
	Lobster        Family = "Lobster"
	DefaultFamily         = Arial
	DefaultSize           = 24.0
)

// ErrUnknownFamily is returned when a family name is not in the fixed set.
var ErrUnknownFamily = errors.New("unknown font family")

var families = []Family{Arial, Verdana, Tahoma, CourierNew, Georgia, TimesNewRoman, Roboto, Montserrat, Lobster}

// stand-in TrueType data for each family
var fontData = map[Family][]byte{
	Arial:         goregular.TTF,
	Verdana:       gomedium.TTF,
	Tahoma:        goregular.TTF,
	CourierNew:    gomono.TTF,
	Georgia:       goitalic.TTF,
	TimesNewRoman: gosmallcaps.TTF,
	Roboto:        goregular.TTF,
	Montserrat:    gobold.TTF,
	Lobster:       gobolditalic.TTF,
}

// Families returns the supported families in display order.
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// Parse resolves a family name case-insensitively.
func Parse(name string) (Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFamily, nil
	}
	for _, f := range families {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Valid reports whether f is one of the supported families.
func (f Family) Valid() bool {
	_, ok := fontData[f]
	return ok
}

func (f Family) String() string { return string(f) }

type faceKey struct {
	family Family
	size   float64
}

var (
	parsedMu sync.Mutex
	parsed   = map[Family]*opentype.Font{}

	faces sync.Map // map[faceKey]font.Face
)

func parsedFont(f Family) (*opentype.Font, error) {
	data, ok := fontData[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
	}
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if fnt, ok := parsed[f]; ok {
		return fnt, nil
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f, err)
	}
	parsed[f] = fnt
	return fnt, nil
}

// Face returns a face for family at size pixels. Faces are cached.
func Face(f Family, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	key := faceKey{f, size}
	if face, ok := faces.Load(key); ok {
		return face.(font.Face), nil
	}
	fnt, err := parsedFont(f)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("face %s %.2f: %w", f, size, err)
	}
	actual, _ := faces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

// Metrics describes the box a single line of text occupies.
type Metrics struct {
	Width    float64
	Height   float64
	Baseline float64 // distance from the top of the box to the baseline
}

// Measure returns the box of text rendered in family at size.
func Measure(text string, f Family, size float64) (Metrics, error) {
	face, err := Face(f, size)
	if err != nil {
		return Metrics{}, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	return Metrics{
		Width:    float64(d.MeasureString(text)) / 64,
		Height:   ascent + descent,
		Baseline: ascent,
	}, nil
}
