package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/example/printcanvas/internal/script"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func splitCommands(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) Run() error {
	ctx := context.Background()
	sess := script.NewSession(c.activeTheme)
	defer sess.Close()

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			for _, cmd := range splitCommands(line) {
				err := sess.Exec(ctx, cmd, c.stdout)
				if errors.Is(err, script.ErrQuit) {
					return nil
				}
				if err != nil {
					return err
				}
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		err := sess.Exec(ctx, scanner.Text(), c.stdout)
		if errors.Is(err, script.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
	}
	return scanner.Err()
}
