package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/jsondoc/go-jsondoc/encode"
	"github.com/jsondoc/go-jsondoc/ir"
	"github.com/jsondoc/go-jsondoc/schema"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Y     bool `cli:"name=y aliases=yaml desc='read input as yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) isYAML(file string) bool {
	if cfg.Y {
		return true
	}
	switch filepath.Ext(file) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (cfg *MainConfig) readArg(cc *cli.Context, file string) ([]byte, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	return io.ReadAll(r)
}

// loadValue reads a document value from a file or stdin ("-"), decoding
// YAML or JSON.
func (cfg *MainConfig) loadValue(cc *cli.Context, file string) (*ir.Node, error) {
	d, err := cfg.readArg(cc, file)
	if err != nil {
		return nil, err
	}
	if cfg.isYAML(file) {
		var v any
		if err := yaml.Unmarshal(d, &v); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", file, err)
		}
		return ir.FromAny(v)
	}
	node, err := ir.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return node, nil
}

func (cfg *MainConfig) loadSchema(cc *cli.Context, file string) (*schema.Node, error) {
	d, err := cfg.readArg(cc, file)
	if err != nil {
		return nil, err
	}
	var s *schema.Node
	if cfg.isYAML(file) {
		s, err = schema.ParseYAML(d)
	} else {
		s, err = schema.ParseJSON(d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", file, err)
	}
	return s, nil
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}

type GetConfig struct {
	*MainConfig
	Schema string `cli:"name=s aliases=schema desc='schema file for default resolution'"`
	Get    *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='line diff instead of patch operations'"`
	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch *cli.Command
}
