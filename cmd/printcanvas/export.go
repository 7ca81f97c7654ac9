package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/printcanvas/internal/clipboard"
	"github.com/example/printcanvas/internal/export"
	"github.com/example/printcanvas/internal/script"
)

var copyImageFn = clipboard.WriteImage

type exportCmd struct {
	*root
	fs      *flag.FlagSet
	inputs  inputFlags
	out     string
	formats string
	keys    string
	copy    bool
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.inputs.register(fs, r)
	fs.StringVar(&c.out, "out", "", "output directory (default from config, else .)")
	fs.StringVar(&c.formats, "format", "png,svg", "comma separated artifacts to write")
	fs.StringVar(&c.keys, "keys", "", "interactive commands applied before exporting, separated by ';' (e.g. \"select image;key up 2\")")
	fs.BoolVar(&c.copy, "copy", false, "also copy the PNG export to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.inputs.text == "" && c.inputs.image == "" {
		return nil, fmt.Errorf("nothing to export: give -text and/or -image")
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	formats, err := export.ParseFormats(c.formats)
	if err != nil {
		return err
	}
	family, err := c.inputs.family()
	if err != nil {
		return err
	}
	data, err := c.inputs.imageData()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess := script.NewSession(c.activeTheme)
	defer sess.Close()
	if c.inputs.text != "" {
		if err := sess.SetText(c.inputs.text, family, c.inputs.size); err != nil {
			return err
		}
	}
	if len(data) > 0 {
		if err := sess.SetImage(ctx, data); err != nil {
			return fmt.Errorf("failed to load %s: %w", c.inputs.image, err)
		}
	}
	for _, line := range splitCommands(c.keys) {
		if err := sess.Exec(ctx, line, c.stderr); err != nil {
			return fmt.Errorf("-keys %q: %w", line, err)
		}
	}

	paths, err := sess.Export(c.exportDir(c.out), formats...)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	for _, p := range paths {
		fmt.Fprintln(c.stdout, p)
		c.notifyExport(p)
	}

	if c.copy {
		img, err := export.RasterScene(sess.Scene())
		if err != nil {
			return err
		}
		if err := copyImageFn(img); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notifyCopy("print area")
	}
	return nil
}
