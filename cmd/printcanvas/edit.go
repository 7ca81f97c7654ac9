package main

import (
	"flag"

	"github.com/example/printcanvas/internal/editor"
)

type editCmd struct {
	*root
	fs     *flag.FlagSet
	inputs inputFlags
	out    string
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.inputs.register(fs, r)
	fs.StringVar(&c.out, "out", "", "directory the P and S shortcuts write to (default from config, else .)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	family, err := c.inputs.family()
	if err != nil {
		return err
	}
	data, err := c.inputs.imageData()
	if err != nil {
		return err
	}
	opts := []editor.Option{
		editor.WithTheme(c.activeTheme),
		editor.WithExportDir(c.exportDir(c.out)),
		editor.WithNotifier(c.notifier),
	}
	if c.inputs.text != "" {
		opts = append(opts, editor.WithText(c.inputs.text, family, c.inputs.size))
	}
	if len(data) > 0 {
		opts = append(opts, editor.WithImage(data))
	}
	ed, err := editor.New(opts...)
	if err != nil {
		return err
	}
	ed.Run()
	return nil
}
