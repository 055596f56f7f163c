package encode

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jsondoc/go-jsondoc/ir"
)

type EncState struct {
	depth, indent int

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w as indented JSON followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// String renders node with opts and returns the result, without the
// trailing newline Encode appends.
func String(node *ir.Node, opts ...EncodeOption) string {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var sb strings.Builder
	if err := encode(node, &sb, es); err != nil {
		return ""
	}
	return sb.String()
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	}
	switch node.Type {
	case ir.NullType:
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	case ir.BoolType:
		v := "false"
		if node.Bool {
			v = "true"
		}
		return writeColored(w, es, ir.BoolType, ValueColor, v)
	case ir.NumberType:
		return writeColored(w, es, ir.NumberType, ValueColor, ir.NumberString(node))
	case ir.StringType:
		return writeColored(w, es, ir.StringType, ValueColor, quote(node.String))
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	}
	return nil
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}")
	}
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for i, field := range node.Fields {
		if i > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeColored(w, es, ir.StringType, FieldColor, quote(field)); err != nil {
			return err
		}
		if err := writeString(w, sep(es)); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "}")
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, elt := range node.Values {
		if i > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(elt, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "]")
}

func sep(es *EncState) string {
	if es.indent == 0 {
		return ":"
	}
	return ": "
}

func quote(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(d)
}

func writeColored(w io.Writer, es *EncState, t ir.Type, attr ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, attr, s)
	}
	return writeString(w, s)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	return writeString(w, strings.Repeat(" ", es.depth*es.indent))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
