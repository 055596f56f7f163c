package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/jsondoc/go-jsondoc/diff"
)

func diffCmd(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments (from-file, to-file)", cli.ErrUsage)
	}
	from, err := cfg.loadValue(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.loadValue(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Text {
		colored := cfg.Color
		if f, ok := cc.Out.(*os.File); ok && !colored {
			colored = isatty.IsTerminal(f.Fd())
		}
		fmt.Fprint(cc.Out, diff.Text(from, to, colored))
		return nil
	}
	d, err := diff.JSON(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s\n", d)
	return nil
}
