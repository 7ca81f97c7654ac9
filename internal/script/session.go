// Package script drives a scene without a window. A Session owns the scene,
// its controller and the event loop they share; scripts (YAML) and
// interactive command lines are replayed against it.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/printcanvas/internal/controller"
	"github.com/example/printcanvas/internal/eventloop"
	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
	"github.com/example/printcanvas/internal/theme"
)

// DecodeTimeout bounds how long a session waits for an image decode.
var DecodeTimeout = 10 * time.Second

// Session is a headless editing session. It is not safe for concurrent
// use; every method runs the event loop on the calling goroutine.
type Session struct {
	queue *eventloop.Queue
	scene *scene.Scene
	ctrl  *controller.Controller
	theme *theme.Theme

	lastDecode scene.DecodeResult

	font     fonts.Family
	fontSize float64

	Moves    int
	Rejected int
}

// NewSession creates a session with an initialised canvas. A nil theme uses
// the default.
func NewSession(th *theme.Theme) *Session {
	if th == nil {
		th = theme.Default()
	}
	s := &Session{
		queue:    eventloop.New(8),
		theme:    th,
		font:     fonts.DefaultFamily,
		fontSize: fonts.DefaultSize,
	}
	s.scene = scene.New(
		scene.WithDispatcher(s.queue),
		scene.WithDecodeListener(func(r scene.DecodeResult) { s.lastDecode = r }),
	)
	s.scene.InitializeRegionAndBackground(scene.CanvasSize)
	s.ctrl = controller.New(s.scene)
	return s
}

// Scene exposes the session's scene.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Controller exposes the session's controller.
func (s *Session) Controller() *controller.Controller { return s.ctrl }

// SetText replaces the text element. Empty font or non-positive size keep
// the session's current choice.
func (s *Session) SetText(content string, font fonts.Family, size float64) error {
	if font != "" {
		s.font = font
	}
	if size > 0 {
		s.fontSize = size
	}
	return s.scene.SetText(content, s.font, s.fontSize)
}

// SetFont changes the font of the text element, recreating it.
func (s *Session) SetFont(font fonts.Family) error {
	s.font = font
	return s.retext()
}

// SetFontSize changes the size of the text element, recreating it.
func (s *Session) SetFontSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("font size must be positive, got %g", size)
	}
	s.fontSize = size
	return s.retext()
}

func (s *Session) retext() error {
	t := s.scene.Text()
	if t == nil {
		return nil
	}
	return s.scene.SetText(t.Content(), s.font, s.fontSize)
}

// SetImage uploads data and waits for the decode to resolve.
func (s *Session) SetImage(ctx context.Context, data []byte) error {
	seq := s.scene.SetImage(data)
	ctx, cancel := context.WithTimeout(ctx, DecodeTimeout)
	defer cancel()
	if err := s.queue.RunUntil(ctx, func() bool { return !s.scene.Decoding() }); err != nil {
		return fmt.Errorf("wait for image decode: %w", err)
	}
	if s.lastDecode.Seq == seq && s.lastDecode.Err != nil {
		return s.lastDecode.Err
	}
	return nil
}

// LoadImage reads path and uploads it.
func (s *Session) LoadImage(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return s.SetImage(ctx, data)
}

// Down presses the pointer at p. It selects and starts dragging the
// top-most element there and reports whether one was hit.
func (s *Session) Down(p geom.Point) (scene.Handle, bool) {
	s.queue.Drain()
	el := s.scene.ElementAt(p)
	if el == nil {
		return scene.Handle{}, false
	}
	h := el.Handle()
	s.ctrl.OnPointerDown(h)
	return h, true
}

// Select makes the element in kind's slot current, as if it were clicked.
func (s *Session) Select(kind scene.Kind) error {
	el := s.scene.Element(kind)
	if el == nil {
		return fmt.Errorf("no %s element", kind)
	}
	s.ctrl.OnPointerDown(el.Handle())
	return nil
}

// Drag moves the selected element's center to p and reports whether the
// print area allowed it.
func (s *Session) Drag(p geom.Point) (bool, error) {
	h, ok := s.ctrl.Selected()
	if !ok {
		return false, fmt.Errorf("drag: nothing selected")
	}
	if s.ctrl.OnPointerDrag(h, p) {
		s.Moves++
		return true, nil
	}
	s.Rejected++
	return false, nil
}

// Key applies an arrow-key gesture by name ("ArrowRight", "up", ...).
func (s *Session) Key(name string) (bool, error) {
	cmd := controller.CommandForName(name)
	if cmd == controller.CommandNone {
		return false, fmt.Errorf("unknown key %q", name)
	}
	return s.ctrl.Apply(cmd), nil
}

// Export writes the requested artifacts into dir.
func (s *Session) Export(dir string, formats ...export.Format) ([]string, error) {
	s.queue.Drain()
	return export.Save(dir, s.scene, s.theme, formats...)
}

// State describes the scene one element per line.
func (s *Session) State() string {
	var b strings.Builder
	region, ok := s.scene.Region()
	if ok {
		fmt.Fprintf(&b, "region %s\n", region)
	} else {
		b.WriteString("region none\n")
	}
	sel, hasSel := s.ctrl.Selected()
	for _, el := range s.scene.Elements() {
		mark := " "
		if hasSel && sel.Kind == el.Handle().Kind {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s %s center=%s rotation=%g bounds=%s", mark, el.Handle().Kind, el.Handle(), el.Center(), el.Rotation(), el.Bounds())
		switch v := el.(type) {
		case *scene.TextElement:
			fmt.Fprintf(&b, " font=%q size=%g text=%q", v.Font(), v.FontSize(), v.Content())
		case *scene.ImageElement:
			fmt.Fprintf(&b, " natural=%s scale=%g", v.Natural(), v.Scale())
		}
		b.WriteByte('\n')
	}
	if s.scene.Decoding() {
		b.WriteString("decoding\n")
	}
	return b.String()
}

// Close tears the scene down.
func (s *Session) Close() {
	s.scene.Teardown()
}
