package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/printcanvas/internal/script"
)

type composeCmd struct {
	*root
	fs     *flag.FlagSet
	script string
	out    string
}

func (c *composeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseComposeCmd(args []string, r *root) (*composeCmd, error) {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	c := &composeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.script, "script", "", "YAML session to replay")
	fs.StringVar(&c.out, "out", "", "output directory, overriding the script's export.dir")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.script == "" && fs.NArg() == 1 {
		c.script = fs.Arg(0)
	}
	if c.script == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *composeCmd) Run() error {
	sc, err := script.Load(c.script)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	sess := script.NewSession(c.activeTheme)
	defer sess.Close()

	out := c.out
	if out == "" && (sc.Export == nil || sc.Export.Dir == "") {
		out = c.exportDir("")
	}
	res, err := script.Run(context.Background(), sess, sc, out)
	for _, p := range res.Paths {
		fmt.Fprintln(c.stdout, p)
		c.notifyExport(p)
	}
	if err != nil {
		return err
	}
	if res.Rejected > 0 {
		fmt.Fprintf(c.stderr, "%d of %d drags were blocked by the print area\n", res.Rejected, res.Moves+res.Rejected)
	}
	return nil
}
