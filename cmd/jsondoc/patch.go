package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jsondoc/go-jsondoc/encode"
	"github.com/jsondoc/go-jsondoc/patch"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments (patch-file, doc-file)", cli.ErrUsage)
	}
	patchJSON, err := cfg.readArg(cc, args[0])
	if err != nil {
		return err
	}
	p, err := patch.Decode(patchJSON)
	if err != nil {
		return err
	}
	value, err := cfg.loadValue(cc, args[1])
	if err != nil {
		return err
	}
	out, err := patch.ApplyValue(value, p)
	if err != nil {
		return err
	}
	return encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...)
}
