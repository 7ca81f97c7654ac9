// Package controller turns pointer and keyboard input into scene mutations.
// Drags are gated by the containment test; rotation and scaling are not.
package controller

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
)

// Controller tracks the selected element and routes input to the scene.
type Controller struct {
	scene    *scene.Scene
	selected *scene.Handle
	dragging *scene.Handle
	onChange func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithChangeListener registers a callback run after every committed scene
// mutation, e.g. to request a repaint.
func WithChangeListener(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// New creates a controller bound to sc.
func New(sc *scene.Scene, opts ...Option) *Controller {
	c := &Controller{scene: sc}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Selected returns the current selection. The handle may refer to an
// element that has since been replaced or removed.
func (c *Controller) Selected() (scene.Handle, bool) {
	if c.selected == nil {
		return scene.Handle{}, false
	}
	return *c.selected, true
}

// SelectedElement resolves the selection against the scene, returning nil
// if its slot is empty.
func (c *Controller) SelectedElement() scene.Element {
	if c.selected == nil {
		return nil
	}
	return c.scene.Element(c.selected.Kind)
}

// OnPointerDown selects h. Nothing moves.
func (c *Controller) OnPointerDown(h scene.Handle) {
	sel := h
	c.selected = &sel
}

// OnPointerDrag moves h's element so its center sits at p if its bounds
// would then lie fully inside the print area. A rejected drag leaves the
// element where it was and reports false; the next in-bounds event moves it
// again.
func (c *Controller) OnPointerDrag(h scene.Handle, p geom.Point) bool {
	el := c.scene.Element(h.Kind)
	if el == nil {
		return false
	}
	region, ok := c.scene.Region()
	if !ok {
		return false
	}
	if !geom.Contains(region, p, el.Bounds().Size()) {
		return false
	}
	c.scene.Move(h.Kind, p)
	c.changed()
	return true
}

// OnKeyDown applies the command bound to code to the selected element.
func (c *Controller) OnKeyDown(code key.Code) bool {
	return c.Apply(CommandForCode(code))
}

// Apply runs cmd against the selected element. Without a selection, or when
// the selected slot is empty, it does nothing.
func (c *Controller) Apply(cmd Command) bool {
	if c.selected == nil || cmd == CommandNone {
		return false
	}
	kind := c.selected.Kind
	var ok bool
	switch cmd {
	case RotateCW:
		ok = c.scene.Rotate(kind, geom.RotationStep)
	case RotateCCW:
		ok = c.scene.Rotate(kind, -geom.RotationStep)
	case ScaleUp:
		ok = c.scene.Grow(kind)
	case ScaleDown:
		ok = c.scene.Shrink(kind)
	}
	if ok {
		c.changed()
	}
	return ok
}

// HandleMouse adapts a window mouse event. A left press hit-tests the scene
// and starts a drag on the element under the pointer; motion while pressed
// drags it; release ends the drag. offset is subtracted from the event
// position to get canvas coordinates.
func (c *Controller) HandleMouse(e mouse.Event, offset geom.Point) {
	p := geom.Pt(float64(e.X), float64(e.Y)).Sub(offset)
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return
		}
		el := c.scene.ElementAt(p)
		if el == nil {
			c.dragging = nil
			return
		}
		h := el.Handle()
		c.OnPointerDown(h)
		c.dragging = &h
		c.changed()
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			c.dragging = nil
		}
	case mouse.DirNone:
		if c.dragging != nil {
			c.OnPointerDrag(*c.dragging, p)
		}
	}
}

// HandleKey adapts a window key event. Only presses are acted on.
func (c *Controller) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	return c.OnKeyDown(e.Code)
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.dragging != nil }

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
