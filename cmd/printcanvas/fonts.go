package main

import (
	"flag"
	"fmt"

	"github.com/example/printcanvas/internal/fonts"
)

type fontsCmd struct {
	*root
	fs     *flag.FlagSet
	sample string
	size   float64
}

func (c *fontsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseFontsCmd(args []string, r *root) (*fontsCmd, error) {
	fs := flag.NewFlagSet("fonts", flag.ExitOnError)
	c := &fontsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.sample, "sample", "", "measure this text in every family")
	fs.Float64Var(&c.size, "size", fonts.DefaultSize, "font size used with -sample")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *fontsCmd) Run() error {
	for _, f := range fonts.Families() {
		if c.sample == "" {
			fmt.Fprintln(c.stdout, f)
			continue
		}
		m, err := fonts.Measure(c.sample, f, c.size)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "%-16s %6.1f x %5.1f\n", f, m.Width, m.Height)
	}
	return nil
}
