package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FromJSON parses JSON data into a node tree. Object field order is
// preserved and numbers keep their int64/float64/decimal-string form.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// Trailing garbage after the value is an error.
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected trailing data", ErrDecode)
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case json.Number:
		return numberNode(v), nil
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	res := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if _, err := res.SetField(key, val); err != nil {
			return nil, err
		}
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	res := NewArray()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if err := res.Append(val); err != nil {
			return nil, err
		}
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func numberNode(v json.Number) *Node {
	if i, err := v.Int64(); err == nil {
		return FromInt(i)
	}
	if f, err := v.Float64(); err == nil {
		return FromFloat(f)
	}
	return FromNumber(v.String())
}

// ToJSON renders a node tree as compact JSON, preserving object field
// order.
func ToJSON(node *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, node *Node) error {
	switch node.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
	case NumberType:
		buf.WriteString(NumberString(node))
	case StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, elt := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, field := range node.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(field)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := encodeValue(buf, node.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode type %s", node.Type)
	}
	return nil
}

// NumberString returns the decimal form of a number node.
func NumberString(node *Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 != nil {
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
	}
	return node.Number
}

func (y *Node) MarshalJSON() ([]byte, error) {
	return ToJSON(y)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	node, err := FromJSON(d)
	if err != nil {
		return err
	}
	*y = *node
	for _, v := range y.Values {
		v.Parent = y
	}
	return nil
}

// ToAny converts a node tree into the equivalent Go representation
// (map[string]any, []any, string, int64, float64, bool, nil). Object field
// order is lost.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, field := range node.Fields {
			res[field] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromAny converts a Go value into a node tree. Maps produce objects with
// sorted keys; use FromKeyVals to control field order.
func FromAny(v any) (*Node, error) {
	switch vv := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return vv.Clone(), nil
	case bool:
		return FromBool(vv), nil
	case string:
		return FromString(vv), nil
	case int:
		return FromInt(int64(vv)), nil
	case int64:
		return FromInt(vv), nil
	case float64:
		return FromFloat(vv), nil
	case json.Number:
		return numberNode(vv), nil
	case []any:
		res := NewArray()
		for _, elt := range vv {
			c, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			if err := res.Append(c); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := NewObject()
		for _, k := range keys {
			c, err := FromAny(vv[k])
			if err != nil {
				return nil, err
			}
			if _, err := res.SetField(k, c); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		// Uncommon numeric kinds and structs round-trip through json.
		d, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %T: %w", v, err)
		}
		return FromJSON(d)
	}
}
