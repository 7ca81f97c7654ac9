package editor

import (
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/printcanvas/internal/eventloop"
	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/geom"
)

// taskEvent carries a function onto the window's event loop.
type taskEvent struct{ fn func() }

type sender interface {
	Send(event interface{})
}

// windowDispatcher posts scene work to the window as taskEvents. Work
// posted before the window exists is held and sent on attach.
type windowDispatcher struct {
	mu      sync.Mutex
	target  sender
	pending []func()
}

var _ eventloop.Dispatcher = (*windowDispatcher)(nil)

func (d *windowDispatcher) Post(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.target == nil {
		d.pending = append(d.pending, fn)
		return
	}
	d.target.Send(taskEvent{fn})
}

func (d *windowDispatcher) attach(s sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = s
	for _, fn := range d.pending {
		s.Send(taskEvent{fn})
	}
	d.pending = nil
}

func (d *windowDispatcher) detach() {
	d.mu.Lock()
	d.target = nil
	d.mu.Unlock()
}

// Run opens the window and blocks until it is closed.
func (e *Editor) Run() {
	driver.Main(e.Main)
}

// Main runs the editor on an existing screen.
func (e *Editor) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  e.size.X,
		Height: e.size.Y,
		Title:  "PrintCanvas",
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	e.dispatcher.attach(w)
	defer func() {
		e.dispatcher.detach()
		e.scene.Teardown()
		if e.onClose != nil {
			e.onClose()
		}
	}()

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			e.size = ev.Size()
			e.dirty = true
		case paint.Event:
			e.paint(s, w)
		case error:
			log.Print(ev)
		default:
			if e.handle(ev) {
				return
			}
		}
		if e.dirty {
			e.dirty = false
			w.Send(paint.Event{})
		}
	}
}

func (e *Editor) paint(s screen.Screen, w screen.Window) {
	if e.size.X <= 0 || e.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(e.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	e.compose(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// handle processes one non-window event and reports whether the editor
// should close.
func (e *Editor) handle(ev interface{}) bool {
	switch ev := ev.(type) {
	case taskEvent:
		ev.fn()
		e.dirty = true
	case mouse.Event:
		return e.handleMouse(ev)
	case key.Event:
		return e.handleKey(ev)
	}
	return false
}

func (e *Editor) handleMouse(ev mouse.Event) bool {
	p := image.Pt(int(ev.X), int(ev.Y))
	if e.shortcuts == nil {
		e.shortcuts = layoutShortcuts(e.size)
	}
	if !e.ctrl.Dragging() {
		hover := shortcutAt(e.shortcuts, p)
		if hover != e.hover {
			e.hover = hover
			e.dirty = true
		}
		if hover >= 0 {
			if ev.Direction == mouse.DirPress && ev.Button == mouse.ButtonLeft {
				return e.trigger(e.shortcuts[hover].action)
			}
			return false
		}
	}
	e.ctrl.HandleMouse(ev, geom.Point{})
	return false
}

func (e *Editor) handleKey(ev key.Event) bool {
	if ev.Direction != key.DirPress {
		return false
	}
	if e.ctrl.HandleKey(ev) {
		return false
	}
	if ev.Code == key.CodeEscape {
		return true
	}
	if ev.Modifiers&(key.ModControl|key.ModMeta|key.ModAlt) != 0 {
		return false
	}
	a, ok := keyActions[unicode.ToLower(ev.Rune)]
	if !ok {
		return false
	}
	return e.trigger(a)
}

// trigger runs a shortcut action and reports whether it asks to quit.
func (e *Editor) trigger(a action) bool {
	var err error
	switch a {
	case actionPNG:
		_, err = e.Export(export.PNG)
	case actionSVG:
		_, err = e.Export(export.SVG)
	case actionCopy:
		err = e.CopyPNG()
	case actionCopySVG:
		err = e.CopySVG()
	case actionPaste:
		err = e.Paste()
	case actionPreview:
		e.preview = !e.preview
	case actionQuit:
		return true
	}
	if err != nil {
		log.Printf("%s: %v", a, err)
	}
	e.dirty = true
	// repaint once the message expires
	time.AfterFunc(messageTTL, func() { e.dispatcher.Post(func() {}) })
	return false
}
