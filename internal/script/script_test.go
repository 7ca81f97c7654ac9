package script

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/scene"
)

const sample = `
text:
  content: Hello
  font: georgia
  size: 20
image: photo.png
steps:
  - down: [400, 300]
  - key: {name: up, repeat: 2}
  - select: text
  - key: ArrowRight
  - drag: [420, 310]
  - drag: [10, 10]
  - export: png
export:
  formats: [svg]
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseSteps(t *testing.T) {
	sc, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Text == nil || sc.Text.Content != "Hello" || sc.Text.Size != 20 {
		t.Fatalf("text = %+v", sc.Text)
	}
	if len(sc.Steps) != 7 {
		t.Fatalf("steps = %d", len(sc.Steps))
	}
	tests := []struct {
		i    int
		kind StepKind
	}{
		{0, StepDown}, {1, StepKey}, {2, StepSelect}, {3, StepKey}, {4, StepDrag}, {6, StepExport},
	}
	for _, tt := range tests {
		if sc.Steps[tt.i].Kind != tt.kind {
			t.Errorf("step %d kind = %s, want %s", tt.i, sc.Steps[tt.i].Kind, tt.kind)
		}
	}
	if p := sc.Steps[0].Point; p.X != 400 || p.Y != 300 {
		t.Errorf("down point = %v", p)
	}
	if st := sc.Steps[1]; st.Key != "up" || st.Repeat != 2 {
		t.Errorf("key step = %+v", st)
	}
	if st := sc.Steps[3]; st.Key != "ArrowRight" || st.Repeat != 1 {
		t.Errorf("key step = %+v", st)
	}
	if sc.Steps[2].Target != scene.KindText {
		t.Errorf("select target = %v", sc.Steps[2].Target)
	}
	if f := sc.Steps[6].Formats; len(f) != 1 || f[0] != "png" {
		t.Errorf("export formats = %v", f)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"unknown step", "steps:\n  - jump: 1\n", `unknown step "jump"`},
		{"bad point", "steps:\n  - down: [1]\n", "wants [x, y]"},
		{"two keys", "steps:\n  - {down: [1, 2], drag: [3, 4]}\n", "one key"},
		{"bad kind", "steps:\n  - select: circle\n", "unknown element kind"},
		{"unknown field", "colour: red\n", "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "photo.png"), 40, 40)
	path := filepath.Join(dir, "session.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	sess := NewSession(nil)
	out := filepath.Join(dir, "out")
	res, err := Run(context.Background(), sess, sc, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Paths) != 2 ||
		res.Paths[0] != filepath.Join(out, export.RasterFilename) ||
		res.Paths[1] != filepath.Join(out, export.VectorFilename) {
		t.Fatalf("paths = %v", res.Paths)
	}
	if res.Moves != 1 || res.Rejected != 1 {
		t.Fatalf("moves = %d, rejected = %d", res.Moves, res.Rejected)
	}

	img := sess.Scene().Image()
	if img == nil || math.Abs(img.Scale()-1.21) > 1e-9 {
		t.Fatalf("image scale = %v", img)
	}
	txt := sess.Scene().Text()
	if txt.Rotation() != 15 || txt.Font() != "Georgia" {
		t.Fatalf("text rotation %v font %v", txt.Rotation(), txt.Font())
	}
	if c := txt.Center(); c.X != 420 || c.Y != 310 {
		t.Fatalf("text center = %v", c)
	}
}

func TestRunStopsOnMiss(t *testing.T) {
	sc, err := Parse(strings.NewReader("steps:\n  - down: [5, 5]\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Run(context.Background(), NewSession(nil), sc, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("err = %v", err)
	}
}

func TestSetImageDecodeError(t *testing.T) {
	sess := NewSession(nil)
	err := sess.SetImage(context.Background(), []byte("not an image"))
	if !errors.Is(err, scene.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if sess.Scene().Image() != nil {
		t.Fatal("failed decode must not create an element")
	}
}

func TestExecCommands(t *testing.T) {
	sess := NewSession(nil)
	ctx := context.Background()
	dir := t.TempDir()
	var out bytes.Buffer
	run := func(line string) {
		t.Helper()
		if err := sess.Exec(ctx, line, &out); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	run("text Hello  world")
	run("font times new roman")
	run("size 30")
	run("down 400 300")
	if !strings.Contains(out.String(), "selected text") {
		t.Fatalf("output = %q", out.String())
	}
	run("key left 2")
	run("drag 1000 1000")
	if !strings.Contains(out.String(), "blocked by print area") {
		t.Fatalf("output = %q", out.String())
	}
	run("export " + dir + " png")
	if _, err := os.Stat(filepath.Join(dir, export.RasterFilename)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, export.VectorFilename)); err == nil {
		t.Fatal("svg should not be written when only png was asked for")
	}

	out.Reset()
	run("state")
	state := out.String()
	for _, want := range []string{`font="Times New Roman"`, "size=30", `text="Hello  world"`, "rotation=330", "* text"} {
		if !strings.Contains(state, want) {
			t.Errorf("state missing %q:\n%s", want, state)
		}
	}

	if err := sess.Exec(ctx, "bogus", &out); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := sess.Exec(ctx, "exit", &out); !errors.Is(err, ErrQuit) {
		t.Fatalf("exit = %v", err)
	}
	run("# comment")
	run("")
}
