package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
)

// Script is a recorded editing session:
//
//	text:
//	  content: Hello
//	  font: Georgia
//	  size: 32
//	image: photo.png
//	steps:
//	  - down: [400, 300]
//	  - drag: [420, 310]
//	  - key: ArrowRight
//	  - key: {name: up, repeat: 3}
//	  - select: image
//	export:
//	  dir: out
//	  formats: [png, svg]
type Script struct {
	Text   *TextSpec   `yaml:"text"`
	Image  string      `yaml:"image"`
	Steps  []Step      `yaml:"steps"`
	Export *ExportSpec `yaml:"export"`

	// base resolves relative paths, normally the script's directory.
	base string
}

// TextSpec seeds the text element.
type TextSpec struct {
	Content string  `yaml:"content"`
	Font    string  `yaml:"font"`
	Size    float64 `yaml:"size"`
}

// ExportSpec names where and what to export after the steps ran.
type ExportSpec struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// StepKind tags a Step.
type StepKind string

const (
	StepDown   StepKind = "down"
	StepDrag   StepKind = "drag"
	StepKey    StepKind = "key"
	StepSelect StepKind = "select"
	StepExport StepKind = "export"
)

// Step is one scripted interaction. Exactly one field group is set,
// selected by Kind.
type Step struct {
	Kind    StepKind
	Point   geom.Point
	Key     string
	Repeat  int
	Target  scene.Kind
	Formats []string
	// Line is the step's position in the source, for error messages.
	Line int
}

// UnmarshalYAML reads a single-key mapping such as {down: [x, y]}.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a step is a mapping with one key", node.Line)
	}
	k, v := node.Content[0], node.Content[1]
	s.Kind = StepKind(k.Value)
	s.Line = node.Line
	switch s.Kind {
	case StepDown, StepDrag:
		var xy []float64
		if err := v.Decode(&xy); err != nil || len(xy) != 2 {
			return fmt.Errorf("line %d: %s wants [x, y]", v.Line, s.Kind)
		}
		s.Point = geom.Pt(xy[0], xy[1])
	case StepKey:
		s.Repeat = 1
		if v.Kind == yaml.ScalarNode {
			s.Key = v.Value
			break
		}
		var spec struct {
			Name   string `yaml:"name"`
			Repeat int    `yaml:"repeat"`
		}
		if err := v.Decode(&spec); err != nil {
			return fmt.Errorf("line %d: key: %w", v.Line, err)
		}
		s.Key = spec.Name
		if spec.Repeat > 0 {
			s.Repeat = spec.Repeat
		}
	case StepSelect:
		kind, err := scene.ParseKind(v.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", v.Line, err)
		}
		s.Target = kind
	case StepExport:
		if v.Kind == yaml.ScalarNode {
			s.Formats = []string{v.Value}
			break
		}
		if err := v.Decode(&s.Formats); err != nil {
			return fmt.Errorf("line %d: export: %w", v.Line, err)
		}
	default:
		return fmt.Errorf("line %d: unknown step %q", k.Line, k.Value)
	}
	return nil
}

// Parse reads a script. Unknown top-level keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return &sc, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &sc, nil
}

// Load parses the script at path; relative paths inside it resolve against
// its directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.base = filepath.Dir(path)
	return sc, nil
}

func (sc *Script) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || sc.base == "" {
		return p
	}
	return filepath.Join(sc.base, p)
}

// Result summarises a run.
type Result struct {
	Paths    []string
	Moves    int
	Rejected int
}

// Run replays sc against sess. outDir, when set, overrides the script's
// export directory. Exports named by export steps and the export section
// are written as they are reached.
func Run(ctx context.Context, sess *Session, sc *Script, outDir string) (Result, error) {
	var res Result
	if sc.Text != nil {
		font, err := fonts.Parse(sc.Text.Font)
		if err != nil {
			return res, err
		}
		if err := sess.SetText(sc.Text.Content, font, sc.Text.Size); err != nil {
			return res, err
		}
	}
	if sc.Image != "" {
		if err := sess.LoadImage(ctx, sc.resolve(sc.Image)); err != nil {
			return res, err
		}
	}

	dir := outDir
	if dir == "" && sc.Export != nil {
		dir = sc.resolve(sc.Export.Dir)
	}
	if dir == "" {
		dir = "."
	}
	save := func(names []string) error {
		formats := []export.Format{export.PNG, export.SVG}
		if len(names) > 0 {
			formats = formats[:0]
			for _, n := range names {
				f, err := export.ParseFormats(n)
				if err != nil {
					return err
				}
				formats = append(formats, f...)
			}
		}
		paths, err := sess.Export(dir, formats...)
		res.Paths = append(res.Paths, paths...)
		return err
	}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := runStep(sess, st, save); err != nil {
			return res, fmt.Errorf("step %d (line %d): %w", i+1, st.Line, err)
		}
	}
	if sc.Export != nil {
		if err := save(sc.Export.Formats); err != nil {
			return res, err
		}
	}
	res.Moves, res.Rejected = sess.Moves, sess.Rejected
	return res, nil
}

func runStep(sess *Session, st Step, save func([]string) error) error {
	switch st.Kind {
	case StepDown:
		if _, ok := sess.Down(st.Point); !ok {
			return fmt.Errorf("nothing at %s", st.Point)
		}
	case StepDrag:
		if _, err := sess.Drag(st.Point); err != nil {
			return err
		}
	case StepKey:
		for n := 0; n < st.Repeat; n++ {
			if _, err := sess.Key(st.Key); err != nil {
				return err
			}
		}
	case StepSelect:
		return sess.Select(st.Target)
	case StepExport:
		return save(st.Formats)
	}
	return nil
}
