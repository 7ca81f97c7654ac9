package geom

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func TestContainsPrintAreaScenario(t *testing.T) {
	region := Rect{X: 275, Y: 175, W: 250, H: 250}
	text := Sz(40, 20)
	if !Contains(region, Pt(300, 200), text) {
		t.Fatalf("expected (300,200) to be accepted for %v in %v", text, region)
	}
	if Contains(region, Pt(100, 100), text) {
		t.Fatalf("expected (100,100) to be rejected")
	}
}

func TestContainsInclusiveEdges(t *testing.T) {
	region := Rect{X: 0, Y: 0, W: 100, H: 100}
	cases := []struct {
		name   string
		center Point
		size   Size
		want   bool
	}{
		{"touching left", Pt(5, 50), Sz(10, 10), true},
		{"touching right", Pt(95, 50), Sz(10, 10), true},
		{"touching top and bottom", Pt(50, 50), Sz(10, 100), true},
		{"one past left", Pt(4.999, 50), Sz(10, 10), false},
		{"one past bottom", Pt(50, 95.001), Sz(10, 10), false},
		{"exact fit", Pt(50, 50), Sz(100, 100), true},
		{"too large", Pt(50, 50), Sz(100.5, 10), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Contains(region, tc.center, tc.size); got != tc.want {
				t.Fatalf("Contains(%v, %v, %v) = %v, want %v", region, tc.center, tc.size, got, tc.want)
			}
		})
	}
}

func TestContainsMatchesEdgeFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	region := Rect{X: 275, Y: 175, W: 250, H: 250}
	for i := 0; i < 2000; i++ {
		p := Pt(rng.Float64()*800, rng.Float64()*600)
		s := Sz(rng.Float64()*300, rng.Float64()*300)
		want := p.X-s.W/2 >= region.Left() && p.X+s.W/2 <= region.Right() &&
			p.Y-s.H/2 >= region.Top() && p.Y+s.H/2 <= region.Bottom()
		if got := Contains(region, p, s); got != want {
			t.Fatalf("mismatch for p=%v s=%v: got %v want %v", p, s, got, want)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pivot := Pt(400, 300)
	p := Pt(420, 290)
	there := Rotate(p, RotationStep, pivot)
	if there.Eq(p, eps) {
		t.Fatalf("rotation did not move point")
	}
	back := Rotate(there, -RotationStep, pivot)
	if !back.Eq(p, 1e-9) {
		t.Fatalf("round trip got %v want %v", back, p)
	}
}

func TestRotateQuarterTurnIsClockwiseOnScreen(t *testing.T) {
	got := Rotate(Pt(1, 0), 90, Pt(0, 0))
	if !got.Eq(Pt(0, 1), 1e-12) {
		t.Fatalf("got %v want (0,1)", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		15:   15,
		-15:  345,
		360:  0,
		375:  15,
		-720: 0,
	}
	for in, want := range cases {
		if got := NormalizeDegrees(in); math.Abs(got-want) > eps {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestScaleStepRoundTrip(t *testing.T) {
	for _, start := range []float64{1, 14, 24, 0.3} {
		if got := start * ScaleStep / ScaleStep; math.Abs(got-start) > 1e-12 {
			t.Errorf("up/down from %v gave %v", start, got)
		}
		if got := start / ScaleStep * ScaleStep; math.Abs(got-start) > 1e-12 {
			t.Errorf("down/up from %v gave %v", start, got)
		}
	}
}

func TestRectImageRounds(t *testing.T) {
	r := Rect{X: 275, Y: 175, W: 250, H: 250}
	got := r.Image()
	if got.Min.X != 275 || got.Min.Y != 175 || got.Dx() != 250 || got.Dy() != 250 {
		t.Fatalf("unexpected pixel rect %v", got)
	}
}

func TestPlacementMapsCenter(t *testing.T) {
	s := Sz(40, 20)
	m := Placement(Pt(400, 300), s, 30, 2)
	if got := m.Apply(Pt(20, 10)); !got.Eq(Pt(400, 300), 1e-9) {
		t.Fatalf("local center mapped to %v", got)
	}
	inv := m.Invert()
	if got := inv.Apply(Pt(400, 300)); !got.Eq(Pt(20, 10), 1e-9) {
		t.Fatalf("inverse mapped center to %v", got)
	}
}

func TestAff3Layout(t *testing.T) {
	m := Translate(5, 7).Mul(ScaleBy(2, 3))
	a := m.Aff3()
	// x' = a[0]*x + a[1]*y + a[2]
	x := a[0]*1 + a[1]*1 + a[2]
	y := a[3]*1 + a[4]*1 + a[5]
	if x != 7 || y != 10 {
		t.Fatalf("Aff3 applied to (1,1) = (%v,%v), want (7,10)", x, y)
	}
}
