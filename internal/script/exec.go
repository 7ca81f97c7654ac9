package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/fonts"
	"github.com/example/printcanvas/internal/geom"
	"github.com/example/printcanvas/internal/scene"
)

// ErrQuit is returned by Exec for "exit" and "quit".
var ErrQuit = errors.New("quit")

// Commands lists the interactive commands with their arguments.
var Commands = []struct{ Name, Args, Help string }{
	{"text", "WORDS...", "replace the text element"},
	{"font", "FAMILY", "change the text font"},
	{"size", "N", "change the text size"},
	{"image", "PATH", "upload an image file"},
	{"down", "X Y", "press the pointer and select the element there"},
	{"select", "text|image", "select an element by kind"},
	{"drag", "X Y", "move the selected element's center"},
	{"key", "NAME [N]", "apply an arrow key (left, right, up, down) N times"},
	{"export", "[DIR] [png,svg]", "write the print area artifacts"},
	{"state", "", "print the scene"},
	{"exit", "", "leave"},
}

// Exec runs one command line against sess, writing feedback to out.
func (s *Session) Exec(ctx context.Context, line string, out io.Writer) error {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}
	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return ErrQuit
	case "help":
		for _, c := range Commands {
			fmt.Fprintf(out, "  %-7s %-16s %s\n", c.Name, c.Args, c.Help)
		}
	case "text":
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), args0(line)))
		if err := s.SetText(rest, "", 0); err != nil {
			return err
		}
	case "font":
		if len(args) == 0 {
			return fmt.Errorf("font: family required")
		}
		f, err := fonts.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}
		return s.SetFont(f)
	case "size":
		v, err := floats(args, 1)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		return s.SetFontSize(v[0])
	case "image":
		if len(args) != 1 {
			return fmt.Errorf("image: path required")
		}
		if err := s.LoadImage(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "image %s\n", s.scene.Image().Natural())
	case "down":
		v, err := floats(args, 2)
		if err != nil {
			return fmt.Errorf("down: %w", err)
		}
		h, ok := s.Down(geom.Pt(v[0], v[1]))
		if !ok {
			fmt.Fprintln(out, "nothing there")
			return nil
		}
		fmt.Fprintf(out, "selected %s\n", h.Kind)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("select: kind required")
		}
		k, err := scene.ParseKind(args[0])
		if err != nil {
			return err
		}
		return s.Select(k)
	case "drag":
		v, err := floats(args, 2)
		if err != nil {
			return fmt.Errorf("drag: %w", err)
		}
		ok, err := s.Drag(geom.Pt(v[0], v[1]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "blocked by print area")
		}
	case "key":
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("key: want NAME [N]")
		}
		n := 1
		if len(args) == 2 {
			var err error
			if n, err = strconv.Atoi(args[1]); err != nil || n < 1 {
				return fmt.Errorf("key: bad count %q", args[1])
			}
		}
		for i := 0; i < n; i++ {
			if _, err := s.Key(args[0]); err != nil {
				return err
			}
		}
	case "export":
		dir, formats := ".", []export.Format{export.PNG, export.SVG}
		for _, a := range args {
			if f, err := export.ParseFormats(a); err == nil {
				formats = f
				continue
			}
			dir = a
		}
		paths, err := s.Export(dir, formats...)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
	case "state":
		io.WriteString(out, s.State())
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

func args0(line string) string {
	f := strings.Fields(line)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
