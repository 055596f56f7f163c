package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jsondoc/go-jsondoc/document"
	"github.com/jsondoc/go-jsondoc/encode"
	"github.com/jsondoc/go-jsondoc/schema"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	var s *schema.Node
	if cfg.Schema != "" {
		s, err = cfg.loadSchema(cc, cfg.Schema)
		if err != nil {
			return err
		}
	}
	for _, arg := range args {
		if err := getArg(cfg, cc, arg, path, s); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func getArg(cfg *GetConfig, cc *cli.Context, arg, path string, s *schema.Node) error {
	value, err := cfg.loadValue(cc, arg)
	if err != nil {
		return err
	}
	doc := document.New(value, s)
	frag, err := doc.Root().GetPath(path)
	if err != nil {
		return err
	}
	return encode.Encode(frag.Value(), cc.Out, cfg.encOpts(cc.Out)...)
}
