package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jsondoc/go-jsondoc/validate"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: check requires at least 1 argument (schema file)", cli.ErrUsage)
	}
	s, err := cfg.loadSchema(cc, args[0])
	if err != nil {
		return err
	}
	docFiles := args[1:]
	if len(docFiles) == 0 {
		docFiles = []string{"-"}
	}
	failed := false
	for _, docFile := range docFiles {
		value, err := cfg.loadValue(cc, docFile)
		if err != nil {
			return err
		}
		if err := validate.Validate(value, s); err != nil {
			failed = true
			reportCheck(cfg, cc, docFile, err)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", argName(docFile))
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func reportCheck(cfg *CheckConfig, cc *cli.Context, docFile string, err error) {
	vErr := &validate.Error{}
	if !errors.As(err, &vErr) {
		fmt.Fprintf(cc.Out, "%s: %s\n", argName(docFile), err)
		return
	}
	fmt.Fprintf(cc.Out, "%s: %s\n\tvalue:  %s\n\tschema: %s\n",
		argName(docFile), vErr.Message, vErr.ValuePath, vErr.SchemaPath)
}

func argName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return file
}
