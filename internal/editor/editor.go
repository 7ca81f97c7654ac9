// Package editor hosts the interactive canvas in a shiny window: pointer
// drags and arrow keys go to the controller, a shortcut bar triggers
// exports and clipboard transfers.
package editor

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/example/printcanvas/internal/clipboard"
	"github.com/example/printcanvas/internal/controller"
	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/notify"
	"github.com/example/printcanvas/internal/render"
	"github.com/example/printcanvas/internal/scene"
	"github.com/example/printcanvas/internal/theme"
)

// messageTTL is how long a status message stays on screen.
const messageTTL = 2 * time.Second

// Editor holds the window-side state around one scene.
type Editor struct {
	scene      *scene.Scene
	ctrl       *controller.Controller
	renderer   *render.Renderer
	dispatcher *windowDispatcher

	theme     *theme.Theme
	exportDir string
	notifier  *notify.Notifier
	onClose   func()

	// clipboard access, replaceable in tests
	writeImage func(image.Image) error
	writeText  func(string) error
	readImage  func() ([]byte, error)

	text       *textInput
	image      []byte
	message    string
	messageEnd time.Time
	hover      int
	preview    bool
	shortcuts  []shortcut
	size       image.Point
	dirty      bool
}

type textInput struct {
	content string
	font    fonts.Family
	size    float64
}

// Option configures an Editor.
type Option func(*Editor)

// WithTheme sets the window palette.
func WithTheme(t *theme.Theme) Option {
	return func(e *Editor) {
		if t != nil {
			e.theme = t
		}
	}
}

// WithExportDir sets where P and S write their artifacts.
func WithExportDir(dir string) Option { return func(e *Editor) { e.exportDir = dir } }

// WithNotifier sets the notifier used after exports and copies.
func WithNotifier(n *notify.Notifier) Option { return func(e *Editor) { e.notifier = n } }

// WithText seeds the text element.
func WithText(content string, font fonts.Family, size float64) Option {
	return func(e *Editor) { e.text = &textInput{content, font, size} }
}

// WithImage seeds the image element from encoded bytes.
func WithImage(data []byte) Option { return func(e *Editor) { e.image = data } }

// WithOnClose registers a callback run when the window goes away.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// New builds the scene and controller. Seeded inputs are applied at once;
// an image decode completes after the window starts.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		renderer:   render.NewRenderer(),
		dispatcher: &windowDispatcher{},
		theme:      theme.Default(),
		exportDir:  ".",
		hover:      -1,
		size:       image.Pt(scene.CanvasWidth, scene.CanvasHeight+bottomHeight),
		writeImage: clipboard.WriteImage,
		writeText:  clipboard.WriteText,
		readImage:  clipboard.ReadImage,
	}
	for _, o := range opts {
		o(e)
	}
	e.scene = scene.New(
		scene.WithDispatcher(e.dispatcher),
		scene.WithDecodeListener(e.decoded),
	)
	e.scene.InitializeRegionAndBackground(scene.CanvasSize)
	e.ctrl = controller.New(e.scene, controller.WithChangeListener(func() { e.dirty = true }))

	if e.text != nil {
		if err := e.scene.SetText(e.text.content, e.text.font, e.text.size); err != nil {
			return nil, err
		}
	}
	if len(e.image) > 0 {
		e.scene.SetImage(e.image)
	}
	return e, nil
}

// Scene exposes the edited scene.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Controller exposes the input controller.
func (e *Editor) Controller() *controller.Controller { return e.ctrl }

func (e *Editor) decoded(r scene.DecodeResult) {
	switch {
	case r.Superseded:
	case r.Err != nil:
		log.Printf("image upload: %v", r.Err)
		e.flash("could not decode image")
	default:
		e.flash("image placed")
	}
	e.dirty = true
}

func (e *Editor) flash(msg string) {
	e.message = msg
	e.messageEnd = time.Now().Add(messageTTL)
}

// Export writes one artifact to the export directory.
func (e *Editor) Export(f export.Format) (string, error) {
	paths, err := export.Save(e.exportDir, e.scene, e.theme, f)
	if err != nil {
		e.flash("export failed")
		return "", err
	}
	path := paths[0]
	e.flash("saved " + path)
	log.Printf("exported %s", path)
	e.notifier.Export(path)
	return path, nil
}

// CopyPNG places the raster export on the clipboard.
func (e *Editor) CopyPNG() error {
	img, err := export.RasterScene(e.scene)
	if err != nil {
		return err
	}
	if err := e.writeImage(img); err != nil {
		e.flash("copy failed")
		return fmt.Errorf("copy png: %w", err)
	}
	e.flash("copied image")
	e.notifier.Copy("print area")
	return nil
}

// CopySVG places the vector export's markup on the clipboard.
func (e *Editor) CopySVG() error {
	doc, err := export.VectorScene(e.scene, e.theme)
	if err != nil {
		return err
	}
	if err := e.writeText(string(doc)); err != nil {
		e.flash("copy failed")
		return fmt.Errorf("copy svg: %w", err)
	}
	e.flash("copied svg")
	e.notifier.Copy("print area as SVG")
	return nil
}

// Paste uploads the clipboard image as the new image element.
func (e *Editor) Paste() error {
	data, err := e.readImage()
	if err != nil {
		e.flash("nothing to paste")
		return fmt.Errorf("paste: %w", err)
	}
	e.scene.SetImage(data)
	e.flash("decoding image")
	return nil
}

// Status is the one-line summary shown at the right of the shortcut bar.
func (e *Editor) Status() string {
	var parts []string
	if el := e.ctrl.SelectedElement(); el != nil {
		parts = append(parts, fmt.Sprintf("%s %.0f°", el.Handle().Kind, el.Rotation()))
		switch v := el.(type) {
		case *scene.TextElement:
			parts = append(parts, fmt.Sprintf("%.1fpx", v.FontSize()))
		case *scene.ImageElement:
			parts = append(parts, fmt.Sprintf("x%.2f", v.Scale()))
		}
	}
	if e.scene.Decoding() {
		parts = append(parts, "decoding")
	}
	return strings.Join(parts, " ")
}
